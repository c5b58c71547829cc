// Package formcodec is the entry point for working with persisted form
// layouts: published code list references, option source classification,
// attachment selections and expression-capable properties. The subpackages
// under pkg/ hold the codecs; this package re-exports the common entry
// points and the lint pipeline.
package formcodec
