package formcodec

import (
	"context"
	"io"
	"io/fs"

	"github.com/goliatone/go-formcodec/pkg/attachments"
	"github.com/goliatone/go-formcodec/pkg/catalog"
	"github.com/goliatone/go-formcodec/pkg/codelist"
	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/layout"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
	"github.com/goliatone/go-formcodec/pkg/orchestrator"
	"github.com/goliatone/go-formcodec/pkg/report"
)

// Component aliases component.Component for callers that only need the root
// package.
type Component = component.Component

// Reference aliases codelist.Reference.
type Reference = codelist.Reference

// Selection aliases attachments.Selection.
type Selection = attachments.Selection

// Finding aliases layout.Finding.
type Finding = layout.Finding

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Lint loads the layout set in source, lints it and renders a report in
// format to out. An empty format skips rendering.
func Lint(ctx context.Context, source fs.FS, format report.Format, out io.Writer, options ...orchestrator.Option) (Result, error) {
	var writers []io.Writer
	if out != nil {
		writers = append(writers, out)
	}
	return orchestrator.New(options...).Lint(ctx, orchestrator.Request{
		Source: source,
		Format: format,
	}, writers...)
}

// EncodeReference builds the optionsId of a published code list.
func EncodeReference(org, name string, version codelist.Version) string {
	return codelist.Encode(codelist.Reference{Org: org, Name: name, Version: version})
}

// DecodeReference parses a published code list optionsId.
func DecodeReference(id string) (Reference, bool) {
	return codelist.Decode(id)
}

// ClassifyOptions reports where c draws its options from.
func ClassifyOptions(c Component, org string, libraryIDs []string) (optionsource.Kind, bool) {
	return optionsource.Classify(c, optionsource.Context{OrgName: org, IDsFromLibrary: libraryIDs})
}

// EmbeddedCatalog exposes the bundled component catalog documents.
func EmbeddedCatalog() fs.FS {
	return catalog.EmbeddedFS()
}

// EmbeddedReportTemplates exposes the bundled report templates.
func EmbeddedReportTemplates() fs.FS {
	return report.TemplatesFS()
}
