package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcodec/pkg/attachments"
	"github.com/goliatone/go-formcodec/pkg/codelist"
	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
)

// EditAttachments walks the user through an attachment list selection
// starting from the persisted ids and returns the new persisted form.
func EditAttachments(ctx context.Context, driver Driver, available attachments.Available, persisted []string) ([]string, error) {
	current := attachments.ToInternal(available, persisted)

	currentTask, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Limit to data types of the current task?",
		Default: current.CurrentTask,
	})
	if err != nil {
		return nil, err
	}
	includePDF, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Include the generated PDF?",
		Default: current.IncludePDF,
	})
	if err != nil {
		return nil, err
	}

	scope := available.Scope(currentTask)
	selected := current.DataTypes
	if currentTask != current.CurrentTask {
		selected = scope
	}

	var picked []string
	if len(scope) > 0 {
		indices, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  "Data types",
			Options:  scope,
			Defaults: indicesOf(scope, selected),
		})
		if err != nil {
			return nil, err
		}
		picked = make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(scope) {
				picked = append(picked, scope[idx])
			}
		}
	}

	if len(picked) == 0 && !includePDF {
		if err := driver.Info(ctx, "No data type selected; the list falls back to every available data type."); err != nil {
			return nil, err
		}
		picked = scope
	}

	return attachments.ToExternal(available, attachments.Selection{
		CurrentTask: currentTask,
		IncludePDF:  includePDF,
		DataTypes:   picked,
	}), nil
}

const (
	choiceManual    = "Manual options"
	choiceReference = "Code list id"
	choicePublished = "Published code list"
)

// EditOptionSource asks which source c should draw its options from and
// returns the updated component. Conflicting configurations are resolved by
// the choice.
func EditOptionSource(ctx context.Context, driver Driver, c component.Component, octx optionsource.Context) (component.Component, error) {
	desc := optionsource.Describe(c, octx)
	if err := driver.Info(ctx, fmt.Sprintf("%s: %s (%d options, optionsId %q)", c.ID, desc.Kind, desc.Options, desc.OptionsID)); err != nil {
		return component.Component{}, err
	}

	choices := []string{choiceManual, choiceReference, choicePublished}
	defaultIndex := 1
	switch {
	case desc.Kind == optionsource.Published:
		defaultIndex = 2
	case desc.Tab == optionsource.TabCodeList:
		defaultIndex = 0
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Option source",
		Options:      choices,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return component.Component{}, err
	}

	switch idx {
	case 0:
		if c.HasOptions() {
			return optionsource.WithManualOptions(c, c.Options), nil
		}
		raw, err := driver.Input(ctx, InputConfig{
			Message:   "Options (value:label, comma separated)",
			Validator: validateOptions,
		})
		if err != nil {
			return component.Component{}, err
		}
		return optionsource.WithManualOptions(c, parseOptions(raw)), nil
	case 1:
		id, err := driver.Input(ctx, InputConfig{
			Message:   "Code list id",
			Default:   c.OptionsID,
			Validator: requireValue,
		})
		if err != nil {
			return component.Component{}, err
		}
		return optionsource.WithReference(c, strings.TrimSpace(id)), nil
	case 2:
		return editPublished(ctx, driver, c, octx, desc.Reference)
	default:
		return c, nil
	}
}

func editPublished(ctx context.Context, driver Driver, c component.Component, octx optionsource.Context, existing *codelist.Reference) (component.Component, error) {
	ref := codelist.Reference{Org: octx.OrgName, Version: codelist.LatestVersion}
	if existing != nil {
		ref = *existing
	}
	if strings.TrimSpace(ref.Org) == "" {
		org, err := driver.Input(ctx, InputConfig{
			Message:   "Organisation",
			Validator: validateName,
		})
		if err != nil {
			return component.Component{}, err
		}
		ref.Org = strings.TrimSpace(org)
	}
	name, err := driver.Input(ctx, InputConfig{
		Message:   "Code list name",
		Default:   ref.Name,
		Validator: validateName,
	})
	if err != nil {
		return component.Component{}, err
	}
	version, err := driver.Input(ctx, InputConfig{
		Message:   "Version (number or _latest)",
		Default:   string(ref.Version),
		Validator: validateVersion,
	})
	if err != nil {
		return component.Component{}, err
	}
	ref.Name = strings.TrimSpace(name)
	ref.Version = codelist.Version(strings.TrimSpace(version))
	return optionsource.WithPublishedReference(c, ref), nil
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validateName(value string) error {
	if err := requireValue(value); err != nil {
		return err
	}
	if strings.Contains(value, "*") {
		return fmt.Errorf("name must not contain '*'")
	}
	return nil
}

func validateOptions(value string) error {
	if len(parseOptions(value)) == 0 {
		return fmt.Errorf("at least one option is required")
	}
	return nil
}

// parseOptions reads "value:label" pairs separated by commas. A pair without
// a label uses the value as label.
func parseOptions(raw string) []component.Option {
	var options []component.Option
	for _, item := range strings.Split(raw, ",") {
		value, label, found := strings.Cut(item, ":")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = value
		}
		options = append(options, component.Option{Value: value, Label: label})
	}
	return options
}

func validateVersion(value string) error {
	version := codelist.Version(strings.TrimSpace(value))
	if version.IsLatest() {
		return nil
	}
	if _, ok := version.Number(); !ok {
		return fmt.Errorf("version must be a number or %s", codelist.LatestVersion)
	}
	return nil
}
