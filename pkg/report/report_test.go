package report_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/layout"
	"github.com/goliatone/go-formcodec/pkg/report"
	"github.com/goliatone/go-formcodec/pkg/testsupport"
)

func sampleData() report.Data {
	set := layout.Set{Documents: []layout.Document{
		{Name: "page1", Components: []component.Component{{ID: "a"}, {ID: "b"}}},
		{Name: "page2", Components: []component.Component{{ID: "c"}}},
	}}
	findings := []layout.Finding{
		{Document: "page1", Component: "a", Code: layout.CodeOptionsConflict, Severity: layout.SeverityError, Message: `both options (1) and optionsId "x" are set`},
		{Document: "page2", Component: "c", Code: layout.CodeStaleDataType, Severity: layout.SeverityWarning, Message: `data type "gone" is not available`},
	}
	return report.Summarize("layouts", set, findings)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	data := sampleData()
	if data.Documents != 2 || data.Components != 3 {
		t.Fatalf("unexpected counts: %+v", data)
	}
	if data.Errors != 1 || data.Warnings != 1 {
		t.Fatalf("unexpected severity counts: %+v", data)
	}
	if empty := report.Summarize("x", layout.Set{}, nil); empty.Findings == nil {
		t.Fatalf("expected non-nil findings slice")
	}
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	engine, err := report.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.Render(report.FormatText, sampleData(), w)
	})
	if result != written {
		t.Fatalf("writer and result differ\nresult: %q\nwriter: %q", result, written)
	}

	for _, want := range []string{
		"layouts: 1 error, 1 warning across 2 documents",
		`ERROR page1/a [options-conflict] both options (1) and optionsId "x" are set`,
		`WARNING page2/c [stale-data-type] data type "gone" is not available`,
	} {
		if !strings.Contains(result, want) {
			t.Fatalf("expected %q in:\n%s", want, result)
		}
	}
}

func TestRenderTextClean(t *testing.T) {
	t.Parallel()

	engine, err := report.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render("", report.Summarize("layouts", layout.Set{}, nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "clean") {
		t.Fatalf("expected clean marker in %q", out)
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	t.Parallel()

	engine, err := report.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	data := sampleData()
	data.Findings[0].Message = "<script>alert(1)</script>"

	out, err := engine.Render(report.FormatHTML, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected message to be escaped:\n%s", out)
	}
	if !strings.Contains(out, "<code>options-conflict</code>") {
		t.Fatalf("expected code cell:\n%s", out)
	}
}

func TestWithFSAndGlobals(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"text.tpl": {Data: []byte("{{ org }}:{{ documents }}")},
	}
	engine, err := report.New(report.WithFS(files), report.WithGlobalData(map[string]any{"org": "ttd"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render(report.FormatText, sampleData())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ttd:2" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := engine.Render(report.FormatHTML, sampleData()); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]report.Format{"": report.FormatText, "TEXT": report.FormatText, " html ": report.FormatHTML}
	for input, want := range cases {
		got, err := report.ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := report.ParseFormat("pdf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRegisterFilterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	engine, err := report.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.RegisterFilter("trim", func(in any, _ any) (any, error) { return in, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	out, err := engine.RenderString("{{ v|trim }}", map[string]any{"v": "  x  "})
	if err != nil || out != "x" {
		t.Fatalf("RenderString = %q, %v", out, err)
	}
}
