package catalog

import (
	"sort"

	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/expressions"
)

// Entry describes one component kind.
type Entry struct {
	Kind        component.Kind
	Source      string
	Expressions []expressions.Address
	Options     bool
	Attachments bool
}

// Store keeps the parsed entries. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	kinds map[component.Kind]Entry
}

// NewStore builds a store from entries. Later entries replace earlier ones
// with the same kind.
func NewStore(entries ...Entry) *Store {
	store := &Store{kinds: make(map[component.Kind]Entry, len(entries))}
	for _, entry := range entries {
		store.kinds[entry.Kind] = cloneEntry(entry)
	}
	return store
}

// With returns a new store holding the receiver's entries plus entry.
func (s *Store) With(entry Entry) *Store {
	out := NewStore()
	if s != nil {
		for kind, existing := range s.kinds {
			out.kinds[kind] = existing
		}
	}
	out.kinds[entry.Kind] = cloneEntry(entry)
	return out
}

// Entry returns the entry for kind.
func (s *Store) Entry(kind component.Kind) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	entry, ok := s.kinds[kind]
	if !ok {
		return Entry{}, false
	}
	return cloneEntry(entry), true
}

// Addresses returns the expression addresses applicable to kind, in table
// order. Unknown kinds have none.
func (s *Store) Addresses(kind component.Kind) []expressions.Address {
	entry, ok := s.Entry(kind)
	if !ok {
		return nil
	}
	return entry.Expressions
}

// HasOptions reports whether kind selects from an options source.
func (s *Store) HasOptions(kind component.Kind) bool {
	entry, ok := s.Entry(kind)
	return ok && entry.Options
}

// HasAttachments reports whether kind carries a dataTypeIds selection.
func (s *Store) HasAttachments(kind component.Kind) bool {
	entry, ok := s.Entry(kind)
	return ok && entry.Attachments
}

// Kinds returns the known kinds sorted by name.
func (s *Store) Kinds() []component.Kind {
	if s == nil {
		return nil
	}
	out := make([]component.Kind, 0, len(s.kinds))
	for kind := range s.kinds {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Empty reports whether the store holds any entries.
func (s *Store) Empty() bool {
	return s == nil || len(s.kinds) == 0
}

func cloneEntry(entry Entry) Entry {
	out := entry
	if entry.Expressions != nil {
		out.Expressions = append([]expressions.Address(nil), entry.Expressions...)
	}
	return out
}

// Applicable returns the catalog addresses for c's kind, dropping any that
// would collide with the component's structural keys.
func (s *Store) Applicable(c component.Component) []expressions.Address {
	return expressions.Applicable(c, s.Addresses(c.Type))
}
