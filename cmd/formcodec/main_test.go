package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcodec/internal/cli"
	"github.com/goliatone/go-formcodec/internal/prompt"
	"github.com/goliatone/go-formcodec/pkg/layout"
)

var configFlag = "--config=" + filepath.Join("testdata", "formcodec.yaml")

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	a.stdout = &stdout
	if a.stderr == nil {
		a.stderr = &bytes.Buffer{}
	}
	err := a.root().Execute(args)
	return stdout.String(), err
}

func newTestApp() *app {
	return newApp(context.Background(), nil, &bytes.Buffer{})
}

func exitCode(err error) int {
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	return -1
}

func TestRefEncodeDecode(t *testing.T) {
	t.Parallel()

	out, err := run(t, newTestApp(), "ref", "encode", "--org", "ttd", "--name", "fruits", "--version", "3")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if out != "lib**ttd**fruits**3\n" {
		t.Fatalf("unexpected id %q", out)
	}

	out, err = run(t, newTestApp(), "ref", "decode", "lib**ttd**fruits**3")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]string{"orgName": "ttd", "codeListName": "fruits", "version": "3"}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}

	if _, err := run(t, newTestApp(), "ref", "decode", "fruits"); exitCode(err) != 1 {
		t.Fatalf("expected exit code 1 for invalid id, got %v", err)
	}
	if _, err := run(t, newTestApp(), "ref", "encode", "--org", "t*d", "--name", "fruits"); err == nil {
		t.Fatalf("expected error for org containing '*'")
	}
}

func TestClassifyJSON(t *testing.T) {
	t.Parallel()

	out, err := run(t, newTestApp(), "classify", configFlag, "--json", filepath.Join("testdata", "layouts"))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var rows []struct {
		Component string `json:"component"`
		Kind      string `json:"kind"`
		Tab       string `json:"tab"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	got := map[string]string{}
	for _, row := range rows {
		got[row.Component] = row.Kind + "/" + row.Tab
	}
	want := map[string]string{
		"fruit": "published/codeList",
		"color": "unknown/codeList",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestLintExitsOnErrors(t *testing.T) {
	t.Parallel()

	out, err := run(t, newTestApp(), "lint", configFlag, filepath.Join("testdata", "layouts"))
	if exitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(out, "[options-conflict]") {
		t.Fatalf("expected options conflict in report:\n%s", out)
	}
}

func TestLintJSONWithValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	values := filepath.Join(dir, "values.jsonc")
	if err := os.WriteFile(values, []byte(`{"values": {"anonymous": true}, /* none */ "extras": {},}`), 0o644); err != nil {
		t.Fatalf("write values: %v", err)
	}
	out, _ := run(t, newTestApp(), "lint", configFlag, "--format", "json", "--values", values, filepath.Join("testdata", "layouts"))
	var payload struct {
		Findings []layout.Finding `json:"findings"`
		Hidden   []string         `json:"hidden"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if diff := cmp.Diff([]string{"name"}, payload.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if len(payload.Findings) != 1 || payload.Findings[0].Code != layout.CodeOptionsConflict {
		t.Fatalf("unexpected findings: %+v", payload.Findings)
	}
}

type scriptedDriver struct {
	confirms []bool
	picks    [][]int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", errors.New("unexpected input")
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return 0, errors.New("unexpected select")
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	value := d.picks[0]
	d.picks = d.picks[1:]
	return value, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestAttachmentsWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join("testdata", "layouts", "page1.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "page1.json"), src, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	a := newTestApp()
	a.driver = &scriptedDriver{confirms: []bool{true, true}, picks: [][]int{{0, 1}}}
	out, err := run(t, a, "attachments", configFlag, "--write", dir, "docs")
	if err != nil {
		t.Fatalf("attachments: %v", err)
	}
	if strings.TrimSpace(out) != `["include-all","current-task"]` {
		t.Fatalf("unexpected output %q", out)
	}

	set, err := layout.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	c, _, ok := set.Component("docs")
	if !ok {
		t.Fatalf("docs component missing after write")
	}
	if diff := cmp.Diff([]string{"include-all", "current-task"}, c.DataTypeIDs); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestAttachmentsUnknownComponent(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	a.driver = &scriptedDriver{}
	if _, err := run(t, a, "attachments", configFlag, filepath.Join("testdata", "layouts"), "missing"); err == nil {
		t.Fatalf("expected error for unknown component")
	}
}

func TestCatalogYAML(t *testing.T) {
	t.Parallel()

	out, err := run(t, newTestApp(), "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, want := range []string{"kinds:", "RepeatingGroup:", "edit.addButton", "attachments: true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
