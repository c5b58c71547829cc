package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcodec/internal/config"
	"github.com/goliatone/go-formcodec/pkg/attachments"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join("testdata", "formcodec.yaml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := config.Config{
		Org:         "ttd",
		LibraryIDs:  []string{"countries", "fruits"},
		CurrentTask: "Task_2",
		Catalog:     filepath.Join("testdata", "catalog"),
		Format:      "html",
		LogLevel:    "info",
		Tasks: []attachments.Task{
			{ID: "Task_1", DataTypes: []string{"invoice"}},
			{ID: "Task_2", DataTypes: []string{"receipt", "invoice"}},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := config.Load(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
	_, err := config.Load(filepath.Join("testdata", "bad-task.yaml"))
	if err == nil || !strings.Contains(err.Error(), "currentTask") {
		t.Fatalf("expected currentTask error, got %v", err)
	}
}

func TestValidateDuplicateTask(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Tasks: []attachments.Task{{ID: "a"}, {ID: "a"}}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected duplicate task error")
	}
}
