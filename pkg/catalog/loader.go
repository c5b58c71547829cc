package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/expressions"
)

// LoadFS walks the provided filesystem and parses JSON/YAML catalog files.
// When fsys is nil or no catalog files are present, the returned store is
// empty. A kind defined twice across files is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, raw := range doc.Kinds {
			kind := component.Kind(strings.TrimSpace(name))
			if kind == "" {
				return fmt.Errorf("catalog: file %s defines an empty kind", path)
			}
			if _, exists := store.kinds[kind]; exists {
				return fmt.Errorf("catalog: duplicate kind %q (file %s)", kind, path)
			}
			parsed, err := normaliseEntry(raw, kind, path)
			if err != nil {
				return err
			}
			store.kinds[kind] = parsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Load parses a single catalog document.
func Load(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	store := NewStore()
	for name, raw := range doc.Kinds {
		kind := component.Kind(strings.TrimSpace(name))
		if kind == "" {
			return nil, fmt.Errorf("catalog: file %s defines an empty kind", source)
		}
		parsed, err := normaliseEntry(raw, kind, source)
		if err != nil {
			return nil, err
		}
		store.kinds[kind] = parsed
	}
	return store, nil
}

type documentFile struct {
	Kinds map[string]entryFile `json:"kinds" yaml:"kinds"`
}

type entryFile struct {
	Expressions []string `json:"expressions" yaml:"expressions"`
	Options     bool     `json:"options" yaml:"options"`
	Attachments bool     `json:"attachments" yaml:"attachments"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
}

func normaliseEntry(raw entryFile, kind component.Kind, source string) (Entry, error) {
	entry := Entry{
		Kind:        kind,
		Source:      source,
		Options:     raw.Options,
		Attachments: raw.Attachments,
	}
	seen := make(map[expressions.Address]struct{}, len(raw.Expressions))
	for idx, value := range raw.Expressions {
		addr := expressions.ParseAddress(value)
		if addr.Key == "" || (strings.Contains(value, ".") && addr.SubKey == "") {
			return Entry{}, fmt.Errorf("catalog: kind %q (file %s) has an invalid expression address %q at index %d", kind, source, value, idx)
		}
		if _, dup := seen[addr]; dup {
			return Entry{}, fmt.Errorf("catalog: kind %q (file %s) lists %q twice", kind, source, addr)
		}
		seen[addr] = struct{}{}
		entry.Expressions = append(entry.Expressions, addr)
	}
	return entry, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
