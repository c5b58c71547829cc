package layout_test

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcodec/pkg/attachments"
	"github.com/goliatone/go-formcodec/pkg/catalog"
	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/layout"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
	"github.com/goliatone/go-formcodec/pkg/testsupport"
)

func TestLoadFS(t *testing.T) {
	t.Parallel()

	set := loadSet(t)
	if got := len(set.Documents); got != 2 {
		t.Fatalf("expected 2 documents, got %d", got)
	}
	if set.Documents[0].Name != "page1" || set.Documents[1].Name != "page2" {
		t.Fatalf("unexpected document order: %s, %s", set.Documents[0].Name, set.Documents[1].Name)
	}

	c, doc, ok := set.Component("fruit")
	if !ok || doc != "page1" {
		t.Fatalf("fruit not found in page1")
	}
	if c.Type != component.KindDropdown || c.OptionsID != "lib**ttd**fruits**3" {
		t.Fatalf("fruit decoded wrong: %#v", c)
	}
	if _, ok := set.Documents[0].Extra["hidden"]; !ok {
		t.Fatalf("expected data.hidden preserved in Extra")
	}
}

func TestParseMissingLayout(t *testing.T) {
	t.Parallel()

	_, err := layout.Parse("empty", []byte(`{"data": {}}`))
	if err == nil || !strings.Contains(err.Error(), "missing data.layout") {
		t.Fatalf("expected missing layout error, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	set := loadSet(t)
	for _, doc := range set.Documents {
		encoded, err := layout.Encode(doc)
		if err != nil {
			t.Fatalf("encode %s: %v", doc.Name, err)
		}
		if !json.Valid(encoded) {
			t.Fatalf("encode %s produced invalid JSON", doc.Name)
		}
		again, err := layout.Parse(doc.Name, encoded)
		if err != nil {
			t.Fatalf("reparse %s: %v", doc.Name, err)
		}
		if diff := cmp.Diff(doc.Components, again.Components); diff != "" {
			t.Fatalf("components changed for %s (-want +got):\n%s", doc.Name, diff)
		}
		if diff := cmp.Diff(doc.Schema, again.Schema); diff != "" {
			t.Fatalf("schema changed for %s (-want +got):\n%s", doc.Name, diff)
		}
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	doc := loadSet(t).Documents[1]
	updated, ok := doc.Replace(component.Component{ID: "name", Type: component.KindTextArea})
	if !ok {
		t.Fatalf("expected replace to match")
	}
	if got, _ := doc.Component("name"); got.Type != component.KindInput {
		t.Fatalf("replace mutated the source document")
	}
	if got, _ := updated.Component("name"); got.Type != component.KindTextArea {
		t.Fatalf("replace did not apply")
	}
	if _, ok := doc.Replace(component.Component{ID: "missing"}); ok {
		t.Fatalf("expected no match for unknown id")
	}
}

type codeAt struct {
	Document  string
	Component string
	Code      layout.Code
}

func TestLintSet(t *testing.T) {
	t.Parallel()

	store, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	ctx := layout.LintContext{
		Catalog: store,
		Options: optionsource.Context{OrgName: "ttd"},
		Attachments: attachments.ScopeFor([]attachments.Task{
			{ID: "Task_1", DataTypes: []string{"invoice", "receipt"}},
		}, "Task_1"),
	}

	findings := layout.LintSet(loadSet(t), ctx)
	got := make([]codeAt, 0, len(findings))
	for _, finding := range findings {
		got = append(got, codeAt{finding.Document, finding.Component, finding.Code})
	}
	want := []codeAt{
		{"page1", "conflict", layout.CodeOptionsConflict},
		{"page2", "broken", layout.CodeMalformedPublishedReference},
		{"page2", "docs", layout.CodeStaleDataType},
		{"page2", "foreign", layout.CodeForeignPublishedReference},
		{"page2", "name", layout.CodeInvalidExpression},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(findings[2].Message, `"gone"`) {
		t.Fatalf("stale finding should name the id: %s", findings[2].Message)
	}
}

func TestLintWithoutSnapshots(t *testing.T) {
	t.Parallel()

	doc := loadSet(t).Documents[1]
	for _, finding := range layout.Lint(doc, layout.LintContext{Options: optionsource.Context{OrgName: "ttd"}}) {
		switch finding.Code {
		case layout.CodeStaleDataType, layout.CodeInvalidExpression:
			t.Fatalf("unexpected %s without snapshots", finding.Code)
		}
	}
}

func TestLintSetGolden(t *testing.T) {
	t.Parallel()

	store, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	findings := layout.LintSet(loadSet(t), layout.LintContext{
		Catalog: store,
		Options: optionsource.Context{OrgName: "ttd"},
		Attachments: attachments.Available{
			CurrentTaskIDs: []string{"invoice"},
			AllTaskIDs:     []string{"invoice", "receipt"},
		},
	})

	path := filepath.Join(testdataDir(t), "set.findings.golden.json")
	testsupport.WriteGolden(t, path, findings)

	var want []layout.Finding
	if err := json.Unmarshal(testsupport.MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if diff := testsupport.CompareGolden(want, findings); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSingleLayout(t *testing.T) {
	t.Parallel()

	doc := testsupport.LoadLayout(t, filepath.Join(testdataDir(t), "set", "page2.json"))
	if doc.Name != "page2" || len(doc.Components) != 4 {
		t.Fatalf("unexpected document %s with %d components", doc.Name, len(doc.Components))
	}
}

func testdataDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve caller")
	}
	return filepath.Join(filepath.Dir(file), "testdata")
}

func loadSet(t *testing.T) layout.Set {
	t.Helper()
	return testsupport.LoadLayoutSet(t, filepath.Join(testdataDir(t), "set"))
}
