package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/goliatone/go-formcodec/pkg/expressions"
	"github.com/goliatone/go-formcodec/pkg/layout"
)

// Transformer rewrites a layout set before it is linted.
type Transformer interface {
	Transform(ctx context.Context, set *layout.Set) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, set *layout.Set) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, set *layout.Set) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, set)
}

// PresetTransformer applies declarative component patches loaded from a
// JSON(C) document:
//
//	{
//	  "components": {
//	    "fruit": {
//	      "set": {"hidden": true, "edit.addButton": false},
//	      "remove": ["required"]
//	    }
//	  }
//	}
//
// Keys under "set" and "remove" are dotted expression addresses.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Components map[string]componentPatch `json:"components"`
}

type componentPatch struct {
	Set    map[string]any `json:"set"`
	Remove []string       `json:"remove"`
}

// NewPresetTransformer constructs a transformer from raw JSON or JSONC bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Every patched component must exist in set.
func (t *PresetTransformer) Transform(ctx context.Context, set *layout.Set) error {
	if set == nil {
		return errors.New("preset transformer: layout set is nil")
	}

	ids := make([]string, 0, len(t.document.Components))
	for id := range t.document.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !patchComponent(set, id, t.document.Components[id]) {
			return fmt.Errorf("preset transformer: component %q not found", id)
		}
	}
	return nil
}

func patchComponent(set *layout.Set, id string, patch componentPatch) bool {
	for idx, doc := range set.Documents {
		c, ok := doc.Component(id)
		if !ok {
			continue
		}
		addrs := make([]string, 0, len(patch.Set))
		for addr := range patch.Set {
			addrs = append(addrs, addr)
		}
		sort.Strings(addrs)
		for _, addr := range addrs {
			c = expressions.Set(c, expressions.ParseAddress(addr), patch.Set[addr])
		}
		for _, addr := range patch.Remove {
			c = expressions.Remove(c, expressions.ParseAddress(addr))
		}
		set.Documents[idx], _ = doc.Replace(c)
		return true
	}
	return false
}
