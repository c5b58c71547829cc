// Package layout reads and writes persisted form layout documents and lints
// them against the option source, attachment and expression rules.
//
// A layout document is the JSON envelope
//
//	{"$schema": "...", "data": {"layout": [component, ...]}}
//
// authored on disk as JSONC (comments and trailing commas are tolerated).
// Keys next to "layout" inside "data" are preserved verbatim by Encode.
package layout
