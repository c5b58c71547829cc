package component_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcodec/pkg/component"
)

func TestComponentJSONKeepsUnknownProperties(t *testing.T) {
	t.Parallel()

	input := `{
		"id": "colors",
		"type": "Dropdown",
		"optionsId": "lib**acme**colors**3",
		"hidden": null,
		"required": ["equals", ["dataModel", "a"], true],
		"textResourceBindings": {"title": "colors.title"}
	}`

	var got component.Component
	if err := json.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := component.Component{
		ID:        "colors",
		Type:      component.KindDropdown,
		OptionsID: "lib**acme**colors**3",
		Properties: map[string]any{
			"hidden":               nil,
			"required":             []any{"equals", []any{"dataModel", "a"}, true},
			"textResourceBindings": map[string]any{"title": "colors.title"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}

	if _, ok := got.Property("hidden"); !ok {
		t.Fatalf("expected null property to be present")
	}

	encoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTrip component.Component
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("unmarshal encoded: %v", err)
	}
	if diff := cmp.Diff(got, roundTrip); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentJSONOptionsAndDataTypes(t *testing.T) {
	t.Parallel()

	input := `{"id":"a","type":"AttachmentList","dataTypeIds":["include-all"],"options":[{"value":"x","label":"X","helpText":"help"}]}`

	var got component.Component
	if err := json.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := component.Component{
		ID:          "a",
		Type:        component.KindAttachmentList,
		DataTypeIDs: []string{"include-all"},
		Options:     []component.Option{{Value: "x", Label: "X", HelpText: "help"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentJSONRejectsWrongTypes(t *testing.T) {
	t.Parallel()

	var got component.Component
	if err := json.Unmarshal([]byte(`{"optionsId": 3}`), &got); err == nil {
		t.Fatalf("expected error for numeric optionsId")
	}
}

func TestComponentMarshalTypedFieldsWin(t *testing.T) {
	t.Parallel()

	c := component.Component{
		ID:         "real",
		Properties: map[string]any{"id": "shadow", "extra": true},
	}
	encoded, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{"id": "real", "extra": true}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	original := component.Component{
		Options:     []component.Option{{Value: "a", Label: "A"}},
		DataTypeIDs: []string{"x"},
		Properties: map[string]any{
			"edit": map[string]any{"addButton": true},
			"list": []any{"a"},
		},
	}
	clone := original.Clone()
	clone.Options[0].Label = "changed"
	clone.DataTypeIDs[0] = "changed"
	clone.Properties["edit"].(map[string]any)["addButton"] = false
	clone.Properties["list"].([]any)[0] = "changed"

	if original.Options[0].Label != "A" {
		t.Fatalf("options aliased")
	}
	if original.DataTypeIDs[0] != "x" {
		t.Fatalf("data type ids aliased")
	}
	if original.Properties["edit"].(map[string]any)["addButton"] != true {
		t.Fatalf("nested map aliased")
	}
	if original.Properties["list"].([]any)[0] != "a" {
		t.Fatalf("nested slice aliased")
	}
}
