package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formcodec/internal/cli"
	"github.com/goliatone/go-formcodec/internal/config"
	"github.com/goliatone/go-formcodec/internal/prompt"
	"github.com/goliatone/go-formcodec/pkg/catalog"
	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
)

type app struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer

	// driver overrides the survey driver; tests inject a scripted one.
	driver prompt.Driver

	cfg    config.Config
	logger *slog.Logger
}

func newApp(ctx context.Context, stdout, stderr io.Writer) *app {
	return &app{ctx: ctx, stdout: stdout, stderr: stderr}
}

// globals are accepted by every command.
type globals struct {
	configPath string
	logLevel   string
	org        string
	library    []string
	task       string
	catalogDir string
	schemas    []string
}

func (g *globals) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&g.org, "org", "", "organisation owning published code lists")
	fs.StringSliceVar(&g.library, "library", nil, "code list ids available in the organisation library")
	fs.StringVar(&g.task, "task", "", "process task the layout set belongs to")
	fs.StringVar(&g.catalogDir, "catalog", "", "directory of catalog documents (default: embedded)")
	fs.StringArrayVar(&g.schemas, "schema", nil, "derive a catalog entry from a component JSON Schema, as Kind=path")
}

// setup loads the config file and lets flags override it.
func (a *app) setup(g *globals) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.org != "" {
		cfg.Org = g.org
	}
	if len(g.library) > 0 {
		cfg.LibraryIDs = g.library
	}
	if g.task != "" {
		cfg.CurrentTask = g.task
	}
	if g.catalogDir != "" {
		cfg.Catalog = g.catalogDir
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	level, err := cli.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.NewLogger(a.stderr, level)
	a.logger.Debug("configuration loaded", "config", g.configPath, "org", cfg.Org, "task", cfg.CurrentTask)
	return nil
}

func (a *app) optionContext() optionsource.Context {
	return optionsource.Context{OrgName: a.cfg.Org, IDsFromLibrary: a.cfg.LibraryIDs}
}

// loadCatalog reads the configured catalog (or the embedded one) and merges
// entries derived from --schema Kind=path arguments.
func (a *app) loadCatalog(schemas []string) (*catalog.Store, error) {
	var (
		store *catalog.Store
		err   error
	)
	if a.cfg.Catalog != "" {
		store, err = catalog.LoadFS(os.DirFS(a.cfg.Catalog))
	} else {
		store, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}
	for _, arg := range schemas {
		kind, path, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(kind) == "" || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("--schema %q: want Kind=path", arg)
		}
		data, err := os.ReadFile(strings.TrimSpace(path))
		if err != nil {
			return nil, fmt.Errorf("--schema %q: %w", arg, err)
		}
		entry, err := catalog.FromComponentSchema(component.Kind(strings.TrimSpace(kind)), data)
		if err != nil {
			return nil, err
		}
		entry.Source = path
		store = store.With(entry)
		a.logger.Debug("catalog entry derived from schema", "kind", entry.Kind, "addresses", len(entry.Expressions))
	}
	return store, nil
}

func (a *app) promptDriver() (prompt.Driver, error) {
	if a.driver != nil {
		return a.driver, nil
	}
	if !cli.IsTerminal(os.Stdin) {
		return nil, errors.New("interactive editing needs a terminal on stdin")
	}
	return prompt.NewSurveyDriver(a.stderr), nil
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:    "formcodec",
		Summary: "Inspect, edit and lint persisted form layouts.",
		Stderr:  a.stderr,
		Subcommands: []*cli.Command{
			a.refCommand(),
			a.classifyCommand(),
			a.attachmentsCommand(),
			a.optionsCommand(),
			a.lintCommand(),
			a.catalogCommand(),
		},
	}
}
