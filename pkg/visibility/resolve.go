package visibility

import (
	"fmt"

	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/expressions"
)

// HiddenAddress is the property that hides a component when it evaluates to
// true.
var HiddenAddress = expressions.Address{Key: "hidden"}

// Resolve evaluates every address in addrs that is set on c and returns the
// outcome keyed by the dotted address. Unset addresses are omitted.
func Resolve(c component.Component, addrs []expressions.Address, evaluator Evaluator, ctx Context) (map[string]bool, error) {
	if evaluator == nil {
		return nil, nil
	}
	out := make(map[string]bool)
	for _, addr := range addrs {
		value, ok := expressions.Get(c, addr)
		if !ok {
			continue
		}
		result, err := evaluator.Eval(addr.String(), value, ctx)
		if err != nil {
			return nil, fmt.Errorf("visibility: component %q %s: %w", c.ID, addr, err)
		}
		out[addr.String()] = result
	}
	return out, nil
}

// FilterVisible returns the components whose hidden expression is unset or
// evaluates to false. The input slice is not modified.
func FilterVisible(components []component.Component, evaluator Evaluator, ctx Context) ([]component.Component, error) {
	if len(components) == 0 {
		return nil, nil
	}
	result := make([]component.Component, 0, len(components))
	for _, c := range components {
		if evaluator != nil {
			if value, ok := expressions.Get(c, HiddenAddress); ok {
				hidden, err := evaluator.Eval(HiddenAddress.String(), value, ctx)
				if err != nil {
					return nil, fmt.Errorf("visibility: component %q: %w", c.ID, err)
				}
				if hidden {
					continue
				}
			}
		}
		result = append(result, c)
	}
	return result, nil
}
