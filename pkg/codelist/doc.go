// Package codelist addresses published, versioned code lists owned by an
// organisation. A published list is referenced from a component's optionsId
// using the canonical wire format
//
//	lib**<org>**<name>**<version>
//
// where version is either a decimal number or the literal "_latest". The
// format is a compatibility contract with previously persisted layouts:
// changing the delimiter or the version grammar breaks existing documents.
//
// Decoding never fails loudly. Anything that does not match the grammar
// exactly is simply not a reference, which lets callers branch on the result
// when classifying an optionsId.
package codelist
