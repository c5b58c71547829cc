// Package attachments converts the persisted dataTypeIds of an attachment
// list component to and from the structured selection the editor works with.
//
// The persisted form is a flat list that may mix ordinary data type ids with
// three reserved sentinels:
//
//	include-all      every data type available in the applicable scope, plus the PDF
//	current-task     restrict the scope to the task of the component's layout set
//	ref-data-as-pdf  include the generated PDF rendition
//
// The persisted form is canonicalising: ToExternal collapses a complete
// selection into include-all, so ToInternal(ToExternal(s)) == s holds for
// every selection ToInternal can produce, while the opposite direction is only
// equal in meaning.
package attachments
