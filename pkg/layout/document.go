package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/goliatone/go-formcodec/pkg/component"
)

// Document is one parsed layout page. Path is set by LoadFS to the file the
// document was read from.
type Document struct {
	Name       string
	Path       string
	Schema     string
	Components []component.Component
	Extra      map[string]json.RawMessage
}

// Set groups the layout documents of one layout set. Task names the process
// task the set belongs to and scopes attachment data types.
type Set struct {
	Name      string
	Task      string
	Documents []Document
}

// Component returns the component with id and the document holding it.
func (s Set) Component(id string) (component.Component, string, bool) {
	for _, doc := range s.Documents {
		if c, ok := doc.Component(id); ok {
			return c, doc.Name, true
		}
	}
	return component.Component{}, "", false
}

// Component returns the component with id.
func (d Document) Component(id string) (component.Component, bool) {
	for _, c := range d.Components {
		if c.ID == id {
			return c, true
		}
	}
	return component.Component{}, false
}

// Replace returns a copy of d with the component carrying c.ID swapped for
// c. The second value is false when no component matched.
func (d Document) Replace(c component.Component) (Document, bool) {
	out := d
	out.Components = make([]component.Component, len(d.Components))
	copy(out.Components, d.Components)
	for idx := range out.Components {
		if out.Components[idx].ID == c.ID {
			out.Components[idx] = c.Clone()
			return out, true
		}
	}
	return d, false
}

type envelope struct {
	Schema string                     `json:"$schema,omitempty"`
	Data   map[string]json.RawMessage `json:"data"`
}

const layoutKey = "layout"

// Parse strips JSONC comments and trailing commas from data, then decodes the
// layout envelope.
func Parse(name string, data []byte) (Document, error) {
	stripped := jsonc.ToJSON(data)

	var env envelope
	if err := json.Unmarshal(stripped, &env); err != nil {
		return Document{}, fmt.Errorf("layout: parse %s: %w", name, err)
	}
	raw, ok := env.Data[layoutKey]
	if !ok {
		return Document{}, fmt.Errorf("layout: parse %s: missing data.layout", name)
	}

	doc := Document{Name: name, Schema: env.Schema}
	if err := json.Unmarshal(raw, &doc.Components); err != nil {
		return Document{}, fmt.Errorf("layout: parse %s: %w", name, err)
	}
	for key, value := range env.Data {
		if key == layoutKey {
			continue
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]json.RawMessage)
		}
		doc.Extra[key] = value
	}
	return doc, nil
}

// Encode writes doc back into its envelope, indented with two spaces.
func Encode(doc Document) ([]byte, error) {
	data := make(map[string]json.RawMessage, len(doc.Extra)+1)
	for key, value := range doc.Extra {
		data[key] = value
	}
	components := doc.Components
	if components == nil {
		components = []component.Component{}
	}
	layout, err := json.Marshal(components)
	if err != nil {
		return nil, fmt.Errorf("layout: encode %s: %w", doc.Name, err)
	}
	data[layoutKey] = layout

	raw, err := json.Marshal(envelope{Schema: doc.Schema, Data: data})
	if err != nil {
		return nil, fmt.Errorf("layout: encode %s: %w", doc.Name, err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("layout: encode %s: %w", doc.Name, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// LoadFS parses every *.json and *.jsonc file in fsys, sorted by path. The
// document name is the path without its extension.
func LoadFS(fsys fs.FS) (Set, error) {
	var set Set
	if fsys == nil {
		return set, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(p) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return Set{}, fmt.Errorf("layout: walk: %w", err)
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return Set{}, fmt.Errorf("layout: read %s: %w", p, err)
		}
		doc, err := Parse(NameFromPath(p), data)
		if err != nil {
			return Set{}, err
		}
		doc.Path = p
		set.Documents = append(set.Documents, doc)
	}
	return set, nil
}

// NameFromPath strips the extension from p.
func NameFromPath(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

func isLayoutFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".jsonc":
		return true
	default:
		return false
	}
}
