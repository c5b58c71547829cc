package component

// Clone returns a deep copy of the component. Slices and nested maps/arrays
// inside Properties are copied so the result can be modified freely.
func (c Component) Clone() Component {
	out := Component{
		ID:        c.ID,
		Type:      c.Type,
		OptionsID: c.OptionsID,
	}
	if c.Options != nil {
		out.Options = CloneOptions(c.Options)
	}
	if c.DataTypeIDs != nil {
		out.DataTypeIDs = append([]string{}, c.DataTypeIDs...)
	}
	if c.Properties != nil {
		out.Properties = cloneMap(c.Properties)
	}
	return out
}

// CloneOptions copies an option list, including composite option values.
func CloneOptions(options []Option) []Option {
	if options == nil {
		return nil
	}
	out := make([]Option, len(options))
	for idx, option := range options {
		option.Value = cloneValue(option.Value)
		out[idx] = option
	}
	return out
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string{}, typed...)
	default:
		return value
	}
}
