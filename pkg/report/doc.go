// Package report renders lint findings through pongo2 templates. The default
// templates ship embedded; WithFS swaps in a caller-provided set with the
// same names (text.tpl, html.tpl).
package report
