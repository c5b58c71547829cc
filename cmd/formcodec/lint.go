package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/goliatone/go-formcodec/internal/cli"
	"github.com/goliatone/go-formcodec/pkg/orchestrator"
	"github.com/goliatone/go-formcodec/pkg/report"
)

// valuesFile feeds expression evaluation during lint.
type valuesFile struct {
	Values map[string]any `json:"values"`
	Extras map[string]any `json:"extras"`
}

func (a *app) lintCommand() *cli.Command {
	var (
		g          globals
		format     string
		valuesPath string
		presetPath string
	)
	return &cli.Command{
		Name:    "lint",
		Summary: "Lint a layout set and print a report",
		Usage:   "formcodec lint DIR [flags]",
		Examples: []cli.Example{
			{Description: "HTML report for the second task", Command: "formcodec lint App/ui/form --task Task_2 --format html > report.html"},
			{Description: "Evaluate expressions against sample data", Command: "formcodec lint App/ui/form --values sample.jsonc"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("lint", pflag.ContinueOnError)
			g.register(fs)
			fs.StringVar(&format, "format", "", "report format: text, html or json (default from config)")
			fs.StringVar(&valuesPath, "values", "", `JSON(C) file {"values": {...}, "extras": {...}} used to evaluate expressions`)
			fs.StringVar(&presetPath, "preset", "", "JSON(C) component patches applied before linting")
			return fs
		},
		Run: func(args []string) error {
			if err := a.setup(&g); err != nil {
				return err
			}
			if len(args) != 1 {
				return fmt.Errorf("lint: exactly one layout directory is required")
			}
			if format == "" {
				format = a.cfg.Format
			}

			store, err := a.loadCatalog(g.schemas)
			if err != nil {
				return err
			}
			options := []orchestrator.Option{
				orchestrator.WithCatalog(store),
				orchestrator.WithOrgName(a.cfg.Org),
				orchestrator.WithLibraryIDs(a.cfg.LibraryIDs...),
				orchestrator.WithTasks(a.cfg.Tasks...),
				orchestrator.WithLogger(a.logger),
			}
			if presetPath != "" {
				preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS("."), presetPath)
				if err != nil {
					return err
				}
				options = append(options, orchestrator.WithTransformer(preset))
			}

			req := orchestrator.Request{
				Source: os.DirFS(args[0]),
				Task:   a.cfg.CurrentTask,
				Title:  args[0],
			}
			if valuesPath != "" {
				values, err := readValues(valuesPath)
				if err != nil {
					return err
				}
				req.Values = values.Values
				req.Extras = values.Extras
				if req.Values == nil {
					req.Values = map[string]any{}
				}
			}

			asJSON := format == "json"
			if !asJSON {
				parsed, err := report.ParseFormat(format)
				if err != nil {
					return err
				}
				req.Format = parsed
			}

			result, err := orchestrator.New(options...).Lint(a.ctx, req, a.stdout)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				payload := map[string]any{"findings": result.Findings, "hidden": result.Hidden}
				if result.Findings == nil {
					payload["findings"] = []any{}
				}
				if err := enc.Encode(payload); err != nil {
					return err
				}
			}
			if result.HasErrors() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func readValues(path string) (valuesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return valuesFile{}, fmt.Errorf("lint: read values: %w", err)
	}
	var out valuesFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &out); err != nil {
		return valuesFile{}, fmt.Errorf("lint: parse values %s: %w", path, err)
	}
	return out, nil
}
