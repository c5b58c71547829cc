package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formcodec/internal/cli"
	"github.com/goliatone/go-formcodec/pkg/codelist"
)

func (a *app) refCommand() *cli.Command {
	return &cli.Command{
		Name:    "ref",
		Summary: "Encode or decode published code list references",
		Subcommands: []*cli.Command{
			a.refEncodeCommand(),
			a.refDecodeCommand(),
		},
	}
}

func (a *app) refEncodeCommand() *cli.Command {
	var (
		g       globals
		name    string
		version string
	)
	return &cli.Command{
		Name:    "encode",
		Summary: "Print the optionsId for a published code list",
		Usage:   "formcodec ref encode --org ORG --name NAME [--version N|_latest]",
		Examples: []cli.Example{
			{Description: "Pin version 3", Command: "formcodec ref encode --org ttd --name fruits --version 3"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			g.register(fs)
			fs.StringVar(&name, "name", "", "code list name")
			fs.StringVar(&version, "version", string(codelist.LatestVersion), "version number or _latest")
			return fs
		},
		Run: func(args []string) error {
			if err := a.setup(&g); err != nil {
				return err
			}
			ref := codelist.Reference{Org: a.cfg.Org, Name: name, Version: codelist.Version(version)}
			id := codelist.Encode(ref)
			if _, ok := codelist.Decode(id); !ok {
				return fmt.Errorf("ref encode: %q is not a valid reference (org and name are required and must not contain '*'; version is a number or _latest)", id)
			}
			_, err := fmt.Fprintln(a.stdout, id)
			return err
		},
	}
}

func (a *app) refDecodeCommand() *cli.Command {
	var g globals
	return &cli.Command{
		Name:    "decode",
		Summary: "Print the parts of one or more optionsIds as JSON",
		Usage:   "formcodec ref decode ID...",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			g.register(fs)
			return fs
		},
		Run: func(args []string) error {
			if err := a.setup(&g); err != nil {
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("ref decode: at least one id is required")
			}
			failed := false
			enc := json.NewEncoder(a.stdout)
			for _, id := range args {
				ref, ok := codelist.Decode(id)
				if !ok {
					fmt.Fprintf(a.stderr, "%s: not a published code list reference\n", id)
					failed = true
					continue
				}
				if err := enc.Encode(ref); err != nil {
					return err
				}
			}
			if failed {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
