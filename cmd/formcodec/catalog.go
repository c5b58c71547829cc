package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcodec/internal/cli"
)

type catalogEntryOut struct {
	Options     bool     `yaml:"options,omitempty"`
	Attachments bool     `yaml:"attachments,omitempty"`
	Expressions []string `yaml:"expressions,flow"`
}

func (a *app) catalogCommand() *cli.Command {
	var g globals
	return &cli.Command{
		Name:    "catalog",
		Summary: "Print the effective component catalog as YAML",
		Usage:   "formcodec catalog [--catalog DIR] [--schema Kind=path]...",
		Examples: []cli.Example{
			{Description: "Derive a kind from its JSON Schema", Command: "formcodec catalog --schema Likert=schemas/Likert.schema.v1.json"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
			g.register(fs)
			return fs
		},
		Run: func(args []string) error {
			if err := a.setup(&g); err != nil {
				return err
			}
			if len(args) != 0 {
				return fmt.Errorf("catalog: unexpected arguments %v", args)
			}
			store, err := a.loadCatalog(g.schemas)
			if err != nil {
				return err
			}

			kinds := make(map[string]catalogEntryOut)
			for _, kind := range store.Kinds() {
				entry, _ := store.Entry(kind)
				out := catalogEntryOut{Options: entry.Options, Attachments: entry.Attachments, Expressions: []string{}}
				for _, addr := range entry.Expressions {
					out.Expressions = append(out.Expressions, addr.String())
				}
				kinds[string(kind)] = out
			}

			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(map[string]any{"kinds": kinds}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
