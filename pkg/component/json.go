package component

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON merges the typed fields with Properties. Typed fields win when a
// Properties entry shadows one of the reserved keys. Empty typed fields are
// omitted, matching how layout documents are written.
func (c Component) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Properties)+5)
	for key, value := range c.Properties {
		if isReservedKey(key) {
			continue
		}
		out[key] = value
	}
	if c.ID != "" {
		out[KeyID] = c.ID
	}
	if c.Type != "" {
		out[KeyType] = string(c.Type)
	}
	if len(c.Options) > 0 {
		out[KeyOptions] = c.Options
	}
	if c.OptionsID != "" {
		out[KeyOptionsID] = c.OptionsID
	}
	if c.DataTypeIDs != nil {
		out[KeyDataTypeIDs] = c.DataTypeIDs
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a persisted component into its typed fields and the
// remaining open properties.
func (c *Component) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("component: decode: %w", err)
	}

	decoded := Component{}
	for key, value := range raw {
		var err error
		switch key {
		case KeyID:
			err = decodeOptionalString(value, &decoded.ID)
		case KeyType:
			var kind string
			err = decodeOptionalString(value, &kind)
			decoded.Type = Kind(kind)
		case KeyOptions:
			if !isNull(value) {
				err = json.Unmarshal(value, &decoded.Options)
			}
		case KeyOptionsID:
			err = decodeOptionalString(value, &decoded.OptionsID)
		case KeyDataTypeIDs:
			if !isNull(value) {
				err = json.Unmarshal(value, &decoded.DataTypeIDs)
			}
		default:
			var property any
			err = json.Unmarshal(value, &property)
			if err == nil {
				if decoded.Properties == nil {
					decoded.Properties = make(map[string]any)
				}
				decoded.Properties[key] = property
			}
		}
		if err != nil {
			return fmt.Errorf("component: decode %q: %w", key, err)
		}
	}

	*c = decoded
	return nil
}

func decodeOptionalString(data json.RawMessage, target *string) error {
	if isNull(data) {
		return nil
	}
	return json.Unmarshal(data, target)
}

func isNull(data json.RawMessage) bool {
	return string(data) == "null"
}

func isReservedKey(key string) bool {
	switch key {
	case KeyID, KeyType, KeyOptions, KeyOptionsID, KeyDataTypeIDs:
		return true
	default:
		return false
	}
}
