package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcodec/pkg/layout"
)

// LoadLayout reads a layout fixture. The document is named after the file
// without its extension.
func LoadLayout(t *testing.T, path string) layout.Document {
	t.Helper()

	doc, err := LoadLayoutFromPath(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	return doc
}

// LoadLayoutFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadLayoutFromPath(path string) (layout.Document, error) {
	if path == "" {
		return layout.Document{}, errors.New("testsupport: layout path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Document{}, fmt.Errorf("testsupport: read layout: %w", err)
	}
	doc, err := layout.Parse(layout.NameFromPath(filepath.Base(path)), data)
	if err != nil {
		return layout.Document{}, fmt.Errorf("testsupport: %w", err)
	}
	return doc, nil
}

// LoadLayoutSet loads every layout document below dir.
func LoadLayoutSet(t *testing.T, dir string) layout.Set {
	t.Helper()

	set, err := layout.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load layout set: %v", err)
	}
	return set
}

// WriteGolden writes arbitrary data to a golden file as indented JSON when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
