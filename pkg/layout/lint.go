package layout

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formcodec/pkg/attachments"
	"github.com/goliatone/go-formcodec/pkg/catalog"
	"github.com/goliatone/go-formcodec/pkg/codelist"
	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/expressions"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
)

// Code identifies a lint rule.
type Code string

const (
	CodeOptionsConflict             Code = "options-conflict"
	CodeForeignPublishedReference   Code = "foreign-published-reference"
	CodeMalformedPublishedReference Code = "malformed-published-reference"
	CodeStaleDataType               Code = "stale-data-type"
	CodeInvalidExpression           Code = "invalid-expression"
	// CodeExpressionEvaluation is reported by callers that evaluate
	// expressions against runtime values; Lint itself never emits it.
	CodeExpressionEvaluation Code = "expression-evaluation"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one lint result.
type Finding struct {
	Document  string         `json:"document"`
	Component string         `json:"component"`
	Kind      component.Kind `json:"kind,omitempty"`
	Code      Code           `json:"code"`
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
}

// LintContext carries the snapshots lint checks against. A nil Catalog
// disables the expression check; empty Attachments disables the stale check.
type LintContext struct {
	Catalog     *catalog.Store
	Options     optionsource.Context
	Attachments attachments.Available
}

// LintSet lints every document of set.
func LintSet(set Set, ctx LintContext) []Finding {
	var findings []Finding
	for _, doc := range set.Documents {
		findings = append(findings, Lint(doc, ctx)...)
	}
	SortFindings(findings)
	return findings
}

// Lint checks doc and returns findings sorted by document, component and
// code. An empty result means the document is clean.
func Lint(doc Document, ctx LintContext) []Finding {
	var findings []Finding
	for _, c := range doc.Components {
		report := func(code Code, severity Severity, format string, args ...any) {
			findings = append(findings, Finding{
				Document:  doc.Name,
				Component: c.ID,
				Kind:      c.Type,
				Code:      code,
				Severity:  severity,
				Message:   fmt.Sprintf(format, args...),
			})
		}
		lintOptions(c, ctx, report)
		lintAttachments(c, ctx, report)
		lintExpressions(c, ctx, report)
	}
	SortFindings(findings)
	return findings
}

// SortFindings orders findings by document, component, code, then message.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Document != b.Document {
			return a.Document < b.Document
		}
		if a.Component != b.Component {
			return a.Component < b.Component
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
}

type reporter func(code Code, severity Severity, format string, args ...any)

func lintOptions(c component.Component, ctx LintContext, report reporter) {
	kind, ok := optionsource.Classify(c, ctx.Options)
	if !ok {
		return
	}
	if kind == optionsource.Unknown {
		report(CodeOptionsConflict, SeverityError, "both options (%d) and optionsId %q are set", len(c.Options), c.OptionsID)
		return
	}
	if !codelist.LooksLikeReference(c.OptionsID) {
		return
	}
	ref, decoded := codelist.Decode(c.OptionsID)
	switch {
	case !decoded:
		report(CodeMalformedPublishedReference, SeverityError, "optionsId %q looks like a published reference but does not decode", c.OptionsID)
	case kind != optionsource.Published:
		report(CodeForeignPublishedReference, SeverityWarning, "optionsId %q is published by %q, not %q", c.OptionsID, ref.Org, ctx.Options.OrgName)
	}
}

func lintAttachments(c component.Component, ctx LintContext, report reporter) {
	if c.DataTypeIDs == nil {
		return
	}
	if len(ctx.Attachments.AllTaskIDs) == 0 && len(ctx.Attachments.CurrentTaskIDs) == 0 {
		return
	}
	for _, id := range attachments.Stale(ctx.Attachments, c.DataTypeIDs) {
		report(CodeStaleDataType, SeverityWarning, "data type %q is not available to this layout set", id)
	}
}

func lintExpressions(c component.Component, ctx LintContext, report reporter) {
	if ctx.Catalog == nil {
		return
	}
	defined, _ := expressions.Partition(c, ctx.Catalog.Applicable(c))
	for _, addr := range defined {
		value, _ := expressions.Get(c, addr)
		if !validExpression(value) {
			report(CodeInvalidExpression, SeverityError, "%s holds %T, want boolean, null or expression array", addr, value)
		}
	}
}

func validExpression(value any) bool {
	switch typed := value.(type) {
	case nil, bool:
		return true
	case []any:
		if len(typed) == 0 {
			return false
		}
		_, ok := typed[0].(string)
		return ok
	default:
		return false
	}
}
