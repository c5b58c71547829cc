package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formcodec/internal/cli"
	"github.com/goliatone/go-formcodec/pkg/layout"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
)

type classifyRow struct {
	Document  string `json:"document"`
	Component string `json:"component"`
	optionsource.Description
}

func (a *app) classifyCommand() *cli.Command {
	var (
		g      globals
		asJSON bool
	)
	return &cli.Command{
		Name:    "classify",
		Summary: "Show where every option-bearing component draws its options from",
		Usage:   "formcodec classify DIR [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("classify", pflag.ContinueOnError)
			g.register(fs)
			fs.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
			return fs
		},
		Run: func(args []string) error {
			if err := a.setup(&g); err != nil {
				return err
			}
			if len(args) != 1 {
				return fmt.Errorf("classify: exactly one layout directory is required")
			}
			set, err := layout.LoadFS(os.DirFS(args[0]))
			if err != nil {
				return err
			}

			octx := a.optionContext()
			var rows []classifyRow
			for _, doc := range set.Documents {
				for _, c := range doc.Components {
					desc := optionsource.Describe(c, octx)
					if !desc.Classified {
						continue
					}
					rows = append(rows, classifyRow{Document: doc.Name, Component: c.ID, Description: desc})
				}
			}
			a.logger.Debug("classified components", "documents", len(set.Documents), "rows", len(rows))

			if asJSON {
				if rows == nil {
					rows = []classifyRow{}
				}
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DOCUMENT\tCOMPONENT\tSOURCE\tTAB\tOPTIONS\tOPTIONSID")
			for _, row := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", row.Document, row.Component, row.Kind, row.Tab, row.Options, row.OptionsID)
			}
			return tw.Flush()
		},
	}
}
