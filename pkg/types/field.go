package types

import "encoding/json"

// FieldType is the kind of input a booking field renders as.
type FieldType string

// Booking field types.
const (
	FieldTypeName        FieldType = "name"
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeEmail       FieldType = "email"
	FieldTypePhone       FieldType = "phone"
	FieldTypeAddress     FieldType = "address"
	FieldTypeNumber      FieldType = "number"
	FieldTypeURL         FieldType = "url"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeRadioInput  FieldType = "radioInput"
	FieldTypeMultiEmail  FieldType = "multiemail"
	FieldTypeBoolean     FieldType = "boolean"
)

// validFieldTypes is the set of recognized field types.
var validFieldTypes = map[FieldType]bool{
	FieldTypeName:        true,
	FieldTypeText:        true,
	FieldTypeTextarea:    true,
	FieldTypeEmail:       true,
	FieldTypePhone:       true,
	FieldTypeAddress:     true,
	FieldTypeNumber:      true,
	FieldTypeURL:         true,
	FieldTypeSelect:      true,
	FieldTypeMultiSelect: true,
	FieldTypeCheckbox:    true,
	FieldTypeRadio:       true,
	FieldTypeRadioInput:  true,
	FieldTypeMultiEmail:  true,
	FieldTypeBoolean:     true,
}

// IsValidFieldType reports whether t is a recognized field type.
func IsValidFieldType(t FieldType) bool {
	return validFieldTypes[t]
}

// Editable is the policy that governs how much a user may customize a field.
type Editable string

// Editable policies. The empty value means the policy was not specified.
const (
	EditableSystem            Editable = "system"
	EditableSystemButOptional Editable = "system-but-optional"
	EditableUser              Editable = "user"
)

// IsSystem reports whether the policy marks a product-owned field.
func (e Editable) IsSystem() bool {
	return e == EditableSystem || e == EditableSystemButOptional
}

// Source types used in provenance records.
const (
	SourceTypeDefault = "default"
	SourceTypeUser    = "user"
)

// Source records where a field's definition originated.
type Source struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Label         string `json:"label"`
	EditURL       string `json:"editUrl,omitempty"`
	FieldRequired *bool  `json:"fieldRequired,omitempty"`
}

// View restricts a field to a rendering context such as "reschedule".
type View struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Option is one static choice of a select or radio field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionInput is the sub-field rendered when a particular option is chosen.
type OptionInput struct {
	Type        FieldType `json:"type"`
	Required    *bool     `json:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Variant tags the shape of a Field.
type Variant int

// Field variants.
const (
	VariantCommon Variant = iota
	VariantOptions
	VariantSystem
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantCommon:
		return "common"
	case VariantOptions:
		return "options"
	case VariantSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Field is one question shown on a booking form.
//
// Optional attributes use their zero value to mean "not specified": empty
// strings, nil pointers, nil slices and nil maps. A non-nil empty slice is an
// explicit value. Attributes this package does not model are kept in Extra and
// written back unchanged when the field is encoded. A decoded field remembers
// its encoded form; see MarshalJSON.
type Field struct {
	Name               string    `json:"name"`
	Type               FieldType `json:"type,omitempty"`
	Editable           Editable  `json:"editable,omitempty"`
	Required           *bool     `json:"required,omitempty"`
	Hidden             *bool     `json:"hidden,omitempty"`
	Label              string    `json:"label,omitempty"`
	DefaultLabel       string    `json:"defaultLabel,omitempty"`
	Placeholder        string    `json:"placeholder,omitempty"`
	DefaultPlaceholder string    `json:"defaultPlaceholder,omitempty"`
	Sources            []Source  `json:"sources,omitempty"`
	Views              []View    `json:"views,omitempty"`

	// Options variant attributes.
	Options               []Option               `json:"options,omitempty"`
	OptionsInputs         map[string]OptionInput `json:"optionsInputs,omitempty"`
	GetOptionsAt          string                 `json:"getOptionsAt,omitempty"`
	HideWhenJustOneOption *bool                  `json:"hideWhenJustOneOption,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	raw json.RawMessage
}

// Variant reports the shape of the field. System ownership takes precedence
// over carrying options, so the location field is a system field.
func (f Field) Variant() Variant {
	if f.Editable.IsSystem() {
		return VariantSystem
	}
	if f.HasOptionAttributes() {
		return VariantOptions
	}
	return VariantCommon
}

// HasOptionAttributes reports whether any options-variant attribute is set.
func (f Field) HasOptionAttributes() bool {
	return f.Options != nil || f.OptionsInputs != nil || f.GetOptionsAt != "" || f.HideWhenJustOneOption != nil
}

// IsRequired returns the required flag, treating unspecified as false.
func (f Field) IsRequired() bool {
	return f.Required != nil && *f.Required
}

// IsHidden returns the hidden flag, treating unspecified as false.
func (f Field) IsHidden() bool {
	return f.Hidden != nil && *f.Hidden
}

// Clone returns a deep copy of the field. Mutating the copy never affects f.
func (f Field) Clone() Field {
	c := f
	c.Required = cloneBool(f.Required)
	c.Hidden = cloneBool(f.Hidden)
	c.HideWhenJustOneOption = cloneBool(f.HideWhenJustOneOption)
	if f.Sources != nil {
		c.Sources = make([]Source, len(f.Sources))
		for i, s := range f.Sources {
			s.FieldRequired = cloneBool(s.FieldRequired)
			c.Sources[i] = s
		}
	}
	if f.Views != nil {
		c.Views = append([]View{}, f.Views...)
	}
	if f.Options != nil {
		c.Options = append([]Option{}, f.Options...)
	}
	if f.OptionsInputs != nil {
		c.OptionsInputs = make(map[string]OptionInput, len(f.OptionsInputs))
		for k, in := range f.OptionsInputs {
			in.Required = cloneBool(in.Required)
			c.OptionsInputs[k] = in
		}
	}
	if f.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(f.Extra))
		for k, v := range f.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// CloneFields deep-copies a field list. A nil list stays nil.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// Bool returns a pointer to v, for building fields in code.
func Bool(v bool) *bool {
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
