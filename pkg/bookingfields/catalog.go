package bookingfields

import (
	"fmt"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Catalog is an immutable, ordered table of system fields. Before fields go
// ahead of the owner's questions and after fields follow them.
type Catalog struct {
	before []types.Field
	after  []types.Field
}

// defaultSources attributes a catalog field to the product defaults.
func defaultSources() []types.Source {
	return []types.Source{{ID: "default", Type: types.SourceTypeDefault, Label: "Default"}}
}

// systemBeforeFields are added ahead of user fields.
func systemBeforeFields() []types.Field {
	return []types.Field{
		{
			Name:     "name",
			Type:     types.FieldTypeName,
			Editable: types.EditableSystem,
			// Only email templates read this label today.
			DefaultLabel: "your_name",
			Required:     types.Bool(true),
			Sources:      defaultSources(),
		},
		{
			Name:         "email",
			Type:         types.FieldTypeEmail,
			Editable:     types.EditableSystem,
			DefaultLabel: "email_address",
			Required:     types.Bool(true),
			Sources:      defaultSources(),
		},
		{
			Name:                  "location",
			Type:                  types.FieldTypeRadioInput,
			Editable:              types.EditableSystem,
			DefaultLabel:          "location",
			HideWhenJustOneOption: types.Bool(true),
			Required:              types.Bool(false),
			GetOptionsAt:          "locations",
			OptionsInputs: map[string]types.OptionInput{
				"attendeeInPerson": {Type: types.FieldTypeAddress, Required: types.Bool(true)},
				"phone":            {Type: types.FieldTypePhone, Required: types.Bool(true)},
			},
			Sources: defaultSources(),
		},
	}
}

// systemAfterFields are added after user fields.
func systemAfterFields() []types.Field {
	return []types.Field{
		{
			Name:         "title",
			Type:         types.FieldTypeText,
			Editable:     types.EditableSystemButOptional,
			DefaultLabel: "what_is_this_meeting_about",
			Required:     types.Bool(true),
			Hidden:       types.Bool(false),
			Sources:      defaultSources(),
		},
		{
			Name:               "notes",
			Type:               types.FieldTypeTextarea,
			Editable:           types.EditableSystemButOptional,
			DefaultLabel:       "additional_notes",
			DefaultPlaceholder: "share_additional_notes",
			Required:           types.Bool(false),
			Sources:            defaultSources(),
		},
		{
			Name:               "guests",
			Type:               types.FieldTypeMultiEmail,
			Editable:           types.EditableSystemButOptional,
			DefaultLabel:       "additional_guests",
			DefaultPlaceholder: "email",
			Required:           types.Bool(false),
			Hidden:             types.Bool(true),
			Sources:            defaultSources(),
		},
		{
			Name:               "rescheduleReason",
			Type:               types.FieldTypeTextarea,
			Editable:           types.EditableSystemButOptional,
			DefaultLabel:       "reason_for_reschedule",
			DefaultPlaceholder: "reschedule_placeholder",
			Required:           types.Bool(false),
			Views:              []types.View{{ID: "reschedule", Label: "Reschedule View"}},
			Sources:            defaultSources(),
		},
	}
}

// defaultCatalog is built once at package initialisation and never mutated.
var defaultCatalog = mustCatalog(systemBeforeFields(), systemAfterFields())

// DefaultCatalog returns the product's system field catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog from copies of before and after. Every field
// needs a name, a system editable policy and at least one source, and no two
// fields may share an identifier. Violations wrap ErrInvalidCatalog.
func NewCatalog(before, after []types.Field) (*Catalog, error) {
	seen := make(map[Identifier]string)
	for _, f := range append(append([]types.Field{}, before...), after...) {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field without name", ErrInvalidCatalog)
		}
		if !f.Editable.IsSystem() {
			return nil, fmt.Errorf("%w: field %q is not a system field", ErrInvalidCatalog, f.Name)
		}
		if len(f.Sources) == 0 {
			return nil, fmt.Errorf("%w: field %q has no sources", ErrInvalidCatalog, f.Name)
		}
		id := Normalize(f.Name)
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: fields %q and %q share identifier %q", ErrInvalidCatalog, prev, f.Name, id)
		}
		seen[id] = f.Name
	}
	return &Catalog{
		before: types.CloneFields(before),
		after:  types.CloneFields(after),
	}, nil
}

func mustCatalog(before, after []types.Field) *Catalog {
	c, err := NewCatalog(before, after)
	if err != nil {
		panic(err)
	}
	return c
}

// BeforeFields returns a copy of the fields placed ahead of user fields, in
// catalog order.
func (c *Catalog) BeforeFields() []types.Field {
	return types.CloneFields(c.before)
}

// AfterFields returns a copy of the fields placed after user fields, in
// catalog order.
func (c *Catalog) AfterFields() []types.Field {
	return types.CloneFields(c.after)
}

// Names returns the names of every catalog field, before fields first.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.before)+len(c.after))
	for _, f := range c.before {
		names = append(names, f.Name)
	}
	for _, f := range c.after {
		names = append(names, f.Name)
	}
	return names
}

// Contains reports whether name normalizes to a catalog identifier.
func (c *Catalog) Contains(name string) bool {
	id := Normalize(name)
	for _, n := range c.Names() {
		if Normalize(n) == id {
			return true
		}
	}
	return false
}
