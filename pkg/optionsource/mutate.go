package optionsource

import (
	"github.com/goliatone/go-formcodec/pkg/codelist"
	"github.com/goliatone/go-formcodec/pkg/component"
)

// WithManualOptions returns a copy of c using the supplied inline options and
// no optionsId. Markup is stripped from the option texts.
func WithManualOptions(c component.Component, options []component.Option) component.Component {
	out := c.Clone()
	out.Options = codelist.SanitizeOptions(options)
	out.OptionsID = ""
	return out
}

// WithReference returns a copy of c pointing at the option list id, with any
// inline options removed.
func WithReference(c component.Component, id string) component.Component {
	out := c.Clone()
	out.Options = nil
	out.OptionsID = id
	return out
}

// WithPublishedReference returns a copy of c pointing at a published code
// list.
func WithPublishedReference(c component.Component, ref codelist.Reference) component.Component {
	return WithReference(c, codelist.Encode(ref))
}

// ClearSource returns a copy of c with neither options nor optionsId.
func ClearSource(c component.Component) component.Component {
	out := c.Clone()
	out.Options = nil
	out.OptionsID = ""
	return out
}
