package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/expressions"
)

// expressionRefMarker identifies references to the expression definitions,
// e.g. "expression.schema.v1.json#/definitions/boolean".
const expressionRefMarker = "expression"

// FromComponentSchema derives an entry for kind from the JSON Schema that
// describes the component's properties. Properties referencing an expression
// definition become addresses; object properties contribute one nested
// address per expression-valued child. Addresses are sorted by key then
// sub-key.
func FromComponentSchema(kind component.Kind, data []byte) (Entry, error) {
	if kind == "" {
		return Entry{}, fmt.Errorf("catalog: component schema requires a kind")
	}
	var schema openapi3.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return Entry{}, fmt.Errorf("catalog: parse component schema for %q: %w", kind, err)
	}

	entry := Entry{Kind: kind, Source: "schema"}
	properties := collectProperties(&schema)

	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ref := properties[key]
		switch key {
		case component.KeyOptions, component.KeyOptionsID:
			entry.Options = true
			continue
		case component.KeyDataTypeIDs:
			entry.Attachments = true
			continue
		}
		if isExpressionRef(ref) {
			entry.Expressions = append(entry.Expressions, expressions.Address{Key: key})
			continue
		}
		if ref == nil || ref.Value == nil {
			continue
		}
		children := collectProperties(ref.Value)
		subKeys := make([]string, 0, len(children))
		for subKey, child := range children {
			if isExpressionRef(child) {
				subKeys = append(subKeys, subKey)
			}
		}
		sort.Strings(subKeys)
		for _, subKey := range subKeys {
			entry.Expressions = append(entry.Expressions, expressions.Address{Key: key, SubKey: subKey})
		}
	}

	return entry, nil
}

// collectProperties merges a schema's own properties with those of its inline
// allOf members. Own properties win.
func collectProperties(schema *openapi3.Schema) map[string]*openapi3.SchemaRef {
	out := make(map[string]*openapi3.SchemaRef)
	if schema == nil {
		return out
	}
	for _, member := range schema.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		for name, property := range member.Value.Properties {
			out[name] = property
		}
	}
	for name, property := range schema.Properties {
		out[name] = property
	}
	return out
}

func isExpressionRef(ref *openapi3.SchemaRef) bool {
	if ref == nil {
		return false
	}
	if strings.Contains(strings.ToLower(ref.Ref), expressionRefMarker) {
		return true
	}
	if ref.Value == nil {
		return false
	}
	for _, group := range []openapi3.SchemaRefs{ref.Value.AnyOf, ref.Value.OneOf, ref.Value.AllOf} {
		for _, member := range group {
			if member != nil && strings.Contains(strings.ToLower(member.Ref), expressionRefMarker) {
				return true
			}
		}
	}
	return false
}
