package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formcodec/internal/cli"
	"github.com/goliatone/go-formcodec/internal/prompt"
	"github.com/goliatone/go-formcodec/pkg/attachments"
	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/layout"
)

// editFunc returns the edited component.
type editFunc func(driver prompt.Driver, c component.Component) (component.Component, error)

func (a *app) attachmentsCommand() *cli.Command {
	return a.editCommand(
		"attachments",
		"Interactively edit the data types of an attachment list",
		func(driver prompt.Driver, c component.Component) (component.Component, error) {
			available := attachments.ScopeFor(a.cfg.Tasks, a.cfg.CurrentTask)
			for _, id := range attachments.Stale(available, c.DataTypeIDs) {
				a.logger.Warn("dropping data type not available to this task", "component", c.ID, "dataType", id)
			}
			ids, err := prompt.EditAttachments(a.ctx, driver, available, c.DataTypeIDs)
			if err != nil {
				return component.Component{}, err
			}
			out := c.Clone()
			out.DataTypeIDs = ids
			return out, nil
		},
		func(c component.Component) any { return c.DataTypeIDs },
	)
}

func (a *app) optionsCommand() *cli.Command {
	return a.editCommand(
		"options",
		"Interactively choose the option source of a component",
		func(driver prompt.Driver, c component.Component) (component.Component, error) {
			return prompt.EditOptionSource(a.ctx, driver, c, a.optionContext())
		},
		func(c component.Component) any {
			return map[string]any{"options": c.Options, "optionsId": c.OptionsID}
		},
	)
}

// editCommand builds "NAME DIR COMPONENT [--write]": load the layout set,
// run edit on the component, print the persisted result and optionally
// rewrite the document.
func (a *app) editCommand(name, summary string, edit editFunc, show func(component.Component) any) *cli.Command {
	var (
		g     globals
		write bool
	)
	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   fmt.Sprintf("formcodec %s DIR COMPONENT [--write]", name),
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
			g.register(fs)
			fs.BoolVar(&write, "write", false, "rewrite the layout document in place")
			return fs
		},
		Run: func(args []string) error {
			if err := a.setup(&g); err != nil {
				return err
			}
			if len(args) != 2 {
				return fmt.Errorf("%s: a layout directory and a component id are required", name)
			}
			dir, id := args[0], args[1]

			set, err := layout.LoadFS(os.DirFS(dir))
			if err != nil {
				return err
			}
			doc, c, err := findComponent(set, id)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			driver, err := a.promptDriver()
			if err != nil {
				return err
			}
			updated, err := edit(driver, c)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(a.stdout)
			if err := enc.Encode(show(updated)); err != nil {
				return err
			}
			if !write {
				return nil
			}

			replaced, _ := doc.Replace(updated)
			data, err := layout.Encode(replaced)
			if err != nil {
				return err
			}
			target := filepath.Join(dir, filepath.FromSlash(doc.Path))
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("%s: write %s: %w", name, target, err)
			}
			a.logger.Info("layout updated", "path", target, "component", id)
			return nil
		},
	}
}

func findComponent(set layout.Set, id string) (layout.Document, component.Component, error) {
	for _, doc := range set.Documents {
		if c, ok := doc.Component(id); ok {
			return doc, c, nil
		}
	}
	return layout.Document{}, component.Component{}, fmt.Errorf("component %q not found", id)
}
