// Package optionsource classifies where a selection component gets its
// options from. The source is never persisted as its own field; it is
// derived on every call from the component's options and optionsId, plus the
// caller's snapshot of library list ids and the current organisation.
package optionsource

import (
	"slices"

	"github.com/goliatone/go-formcodec/pkg/codelist"
	"github.com/goliatone/go-formcodec/pkg/component"
)

// Kind is the classified option source of a component.
type Kind int

const (
	// Internal options are stored inline on the component.
	Internal Kind = iota + 1
	// Unknown marks components carrying both inline options and an optionsId.
	// The state is inconsistent and must be surfaced, never repaired.
	Unknown
	// Published references a versioned code list owned by the organisation.
	Published
	// FromLibrary references a list managed by the application library.
	FromLibrary
	// CustomID references an option list the editor knows nothing about.
	CustomID
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Unknown:
		return "unknown"
	case Published:
		return "published"
	case FromLibrary:
		return "fromLibrary"
	case CustomID:
		return "customId"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Context carries the caller-owned snapshots used during classification.
// Neither field is retained or modified.
type Context struct {
	IDsFromLibrary []string
	OrgName        string
}

// Classify determines the option source of c. The second return value is
// false when the component has neither options nor an optionsId.
//
// The conflict check runs first so an optionsId is never interpreted when
// inline options are also present.
func Classify(c component.Component, ctx Context) (Kind, bool) {
	switch {
	case c.HasOptions() && c.HasOptionsID():
		return Unknown, true
	case c.HasOptions():
		return Internal, true
	case c.HasOptionsID():
		return classifyReference(c.OptionsID, ctx), true
	default:
		return 0, false
	}
}

func classifyReference(id string, ctx Context) Kind {
	if codelist.IsReferenceOwnedBy(id, ctx.OrgName) {
		return Published
	}
	if slices.Contains(ctx.IDsFromLibrary, id) {
		return FromLibrary
	}
	return CustomID
}

// Tab names the editing surface that opens by default.
type Tab string

const (
	TabCodeList  Tab = "codeList"
	TabReference Tab = "reference"
)

// InitialTab picks the default editing surface for c. The result depends only
// on the inputs so repeated calls never switch tabs under the user.
func InitialTab(c component.Component, ctx Context) Tab {
	kind, ok := Classify(c, ctx)
	if !ok {
		return TabReference
	}
	switch kind {
	case Internal, FromLibrary, Published, Unknown:
		return TabCodeList
	default:
		return TabReference
	}
}

// Description summarises the option source of a component for display.
type Description struct {
	Kind       Kind                `json:"kind"`
	Classified bool                `json:"classified"`
	OptionsID  string              `json:"optionsId,omitempty"`
	Options    int                 `json:"options"`
	Reference  *codelist.Reference `json:"reference,omitempty"`
	Tab        Tab                 `json:"tab"`
}

// Describe classifies c and attaches the decoded published reference when
// there is one.
func Describe(c component.Component, ctx Context) Description {
	kind, ok := Classify(c, ctx)
	desc := Description{
		Kind:       kind,
		Classified: ok,
		OptionsID:  c.OptionsID,
		Options:    len(c.Options),
		Tab:        InitialTab(c, ctx),
	}
	if kind == Published {
		if ref, decoded := codelist.Decode(c.OptionsID); decoded {
			desc.Reference = &ref
		}
	}
	return desc
}
