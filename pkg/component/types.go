package component

// Kind is the component type string stored under the "type" key.
type Kind string

const (
	KindCheckboxes        Kind = "Checkboxes"
	KindRadioButtons      Kind = "RadioButtons"
	KindDropdown          Kind = "Dropdown"
	KindMultipleSelect    Kind = "MultipleSelect"
	KindLikert            Kind = "Likert"
	KindFileUploadWithTag Kind = "FileUploadWithTag"
	KindAttachmentList    Kind = "AttachmentList"
	KindInput             Kind = "Input"
	KindTextArea          Kind = "TextArea"
	KindParagraph         Kind = "Paragraph"
	KindGroup             Kind = "Group"
	KindRepeatingGroup    Kind = "RepeatingGroup"
)

// Persisted keys owned by the typed fields of Component.
const (
	KeyID          = "id"
	KeyType        = "type"
	KeyOptions     = "options"
	KeyOptionsID   = "optionsId"
	KeyDataTypeIDs = "dataTypeIds"
)

// Option is a single selectable value of an inline option list.
type Option struct {
	Value       any    `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
}

// Component is one form element. Options and OptionsID describe the source of
// selectable values; DataTypeIDs is used by attachment lists. Properties holds
// the remaining keys of the open record, including expression-capable values
// such as "hidden" or the "edit" sub-map of group components.
type Component struct {
	ID          string
	Type        Kind
	Options     []Option
	OptionsID   string
	DataTypeIDs []string
	Properties  map[string]any
}

// HasOptions reports whether an inline option list is present.
func (c Component) HasOptions() bool {
	return len(c.Options) > 0
}

// HasOptionsID reports whether a reference to an option list is present.
func (c Component) HasOptionsID() bool {
	return c.OptionsID != ""
}

// Property returns the raw value stored under key and whether the key is
// present. A present key may hold nil.
func (c Component) Property(key string) (any, bool) {
	if c.Properties == nil {
		return nil, false
	}
	value, ok := c.Properties[key]
	return value, ok
}
