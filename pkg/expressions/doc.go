// Package expressions reads and writes expression-capable properties of a
// component without callers needing to know whether a property lives at the
// top level ("hidden", "required", "readOnly") or inside a sub-map
// ("edit.addButton" on repeating groups).
//
// A property is set when its key is present, including when it holds nil.
// JSON null is the state of a freshly added expression that has not been
// configured yet, so it must stay distinguishable from an absent key.
//
// The package also converts persisted expressions into the structured form
// the editor manipulates (see Expression) and back.
package expressions
