package expressions

import "strings"

// Address locates an expression-capable property. SubKey is empty for top
// level properties.
type Address struct {
	Key    string `json:"key" yaml:"key"`
	SubKey string `json:"subKey,omitempty" yaml:"subKey,omitempty"`
}

// String returns "key" or "key.subKey".
func (a Address) String() string {
	if a.SubKey == "" {
		return a.Key
	}
	return a.Key + "." + a.SubKey
}

// Nested reports whether the address points into a sub-map.
func (a Address) Nested() bool {
	return a.SubKey != ""
}

// ParseAddress splits a dotted address on its first dot.
func ParseAddress(raw string) Address {
	key, subKey, _ := strings.Cut(strings.TrimSpace(raw), ".")
	return Address{Key: key, SubKey: subKey}
}
