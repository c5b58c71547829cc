package expressions

import "github.com/goliatone/go-formcodec/pkg/component"

// Get returns the value stored at addr and whether it is present.
func Get(c component.Component, addr Address) (any, bool) {
	value, ok := c.Property(addr.Key)
	if !ok || !addr.Nested() {
		return value, ok
	}
	sub, isMap := value.(map[string]any)
	if !isMap {
		return nil, false
	}
	value, ok = sub[addr.SubKey]
	return value, ok
}

// IsSet reports whether addr is present on c. A nil value counts as set.
func IsSet(c component.Component, addr Address) bool {
	_, ok := Get(c, addr)
	return ok
}

// Set returns a copy of c with value stored at addr. Nested addresses create
// the sub-map when missing and leave sibling sub-keys untouched. A sub-map
// slot holding something other than an object is replaced.
func Set(c component.Component, addr Address, value any) component.Component {
	out := c.Clone()
	if out.Properties == nil {
		out.Properties = make(map[string]any)
	}
	if !addr.Nested() {
		out.Properties[addr.Key] = value
		return out
	}
	sub, ok := out.Properties[addr.Key].(map[string]any)
	if !ok {
		sub = make(map[string]any, 1)
	}
	sub[addr.SubKey] = value
	out.Properties[addr.Key] = sub
	return out
}

// Remove returns a copy of c without addr. Removing a sub-key keeps the
// sub-map itself, even when it ends up empty.
func Remove(c component.Component, addr Address) component.Component {
	out := c.Clone()
	if out.Properties == nil {
		return out
	}
	if !addr.Nested() {
		delete(out.Properties, addr.Key)
		return out
	}
	if sub, ok := out.Properties[addr.Key].(map[string]any); ok {
		delete(sub, addr.SubKey)
	}
	return out
}

// Partition splits candidates into the addresses already set on c and the
// ones that can still be added. Both results keep candidate order.
func Partition(c component.Component, candidates []Address) (defined, undefined []Address) {
	for _, addr := range candidates {
		if IsSet(c, addr) {
			defined = append(defined, addr)
			continue
		}
		undefined = append(undefined, addr)
	}
	return defined, undefined
}

// Applicable filters candidates down to the addresses that may carry an
// expression on c. Structural keys (id, type, options, optionsId,
// dataTypeIds) never do. Nested addresses are dropped when c holds a
// non-object value at the parent key. Order is preserved, duplicates dropped.
func Applicable(c component.Component, candidates []Address) []Address {
	out := make([]Address, 0, len(candidates))
	seen := make(map[Address]struct{}, len(candidates))
	for _, addr := range candidates {
		if addr.Key == "" || isStructuralKey(addr.Key) {
			continue
		}
		if addr.Nested() {
			if parent, ok := c.Property(addr.Key); ok && parent != nil {
				if _, isMap := parent.(map[string]any); !isMap {
					continue
				}
			}
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

func isStructuralKey(key string) bool {
	switch key {
	case component.KeyID, component.KeyType, component.KeyOptions, component.KeyOptionsID, component.KeyDataTypeIDs:
		return true
	default:
		return false
	}
}
