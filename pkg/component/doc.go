// Package component defines the persisted configuration of a single form
// element as it appears in a layout document. The fields the codecs care
// about (options, optionsId, dataTypeIds) are typed; every other key is kept
// verbatim in Properties so documents round-trip without losing data the
// codecs do not understand. Values stored in Properties follow encoding/json
// conventions: JSON null decodes to a present key holding nil, nested objects
// decode to map[string]any and arrays to []any.
package component
