// Package catalog is the side table describing, per component kind, which
// expression-capable properties exist and whether the kind carries an options
// source or an attachment selection. Addresses are derived from this table and
// never persisted themselves.
//
// Tables are plain JSON or YAML documents:
//
//	kinds:
//	  RepeatingGroup:
//	    expressions: [hidden, edit.addButton, edit.deleteButton]
//	  Dropdown:
//	    options: true
//	    expressions: [hidden, required, readOnly]
//
// EmbeddedFS bundles the default table. FromComponentSchema derives an entry
// from the JSON Schema describing a component's properties.
package catalog
