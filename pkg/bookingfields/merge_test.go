package bookingfields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func TestLayerPersistedWins(t *testing.T) {
	catalog := DefaultCatalog().AfterFields()[0] // title
	persisted := types.Field{
		Name:     "title",
		Required: types.Bool(false),
		Hidden:   types.Bool(true),
		Label:    "Topic",
	}

	got := layer(catalog, persisted)

	assert.Equal(t, "title", got.Name)
	assert.False(t, got.IsRequired())
	assert.True(t, got.IsHidden())
	assert.Equal(t, "Topic", got.Label)
	assert.Equal(t, types.FieldTypeText, got.Type)
	assert.Equal(t, types.EditableSystemButOptional, got.Editable)
	assert.Equal(t, "what_is_this_meeting_about", got.DefaultLabel)
	assert.Equal(t, catalog.Sources, got.Sources)
}

func TestLayerKeepsPersistedName(t *testing.T) {
	catalog := DefaultCatalog().BeforeFields()[1] // email
	got := layer(catalog, types.Field{Name: "email_address"})
	assert.Equal(t, "email_address", got.Name)
	assert.Equal(t, types.FieldTypeEmail, got.Type)
}

func TestLayerExplicitEmptySliceWins(t *testing.T) {
	catalog := DefaultCatalog().AfterFields()[3] // rescheduleReason
	persisted := types.Field{Name: "rescheduleReason", Views: []types.View{}, Sources: []types.Source{}}

	got := layer(catalog, persisted)
	assert.NotNil(t, got.Views)
	assert.Empty(t, got.Views)
	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
}

func TestLayerOptionsAttributes(t *testing.T) {
	catalog := DefaultCatalog().BeforeFields()[2] // location

	t.Run("catalog fills options inputs", func(t *testing.T) {
		got := layer(catalog, types.Field{Name: "location", Required: types.Bool(true)})
		assert.True(t, got.IsRequired())
		assert.Equal(t, "locations", got.GetOptionsAt)
		require.NotNil(t, got.HideWhenJustOneOption)
		assert.True(t, *got.HideWhenJustOneOption)
		assert.Len(t, got.OptionsInputs, 2)
	})

	t.Run("persisted options inputs replace catalog map", func(t *testing.T) {
		persisted := types.Field{
			Name: "location",
			OptionsInputs: map[string]types.OptionInput{
				"phone": {Type: types.FieldTypePhone, Required: types.Bool(false)},
			},
			HideWhenJustOneOption: types.Bool(false),
		}
		got := layer(catalog, persisted)
		require.Len(t, got.OptionsInputs, 1)
		assert.False(t, *got.OptionsInputs["phone"].Required)
		assert.False(t, *got.HideWhenJustOneOption)
	})
}

func TestMergeVariant(t *testing.T) {
	location := DefaultCatalog().BeforeFields()[2]
	tests := []struct {
		name      string
		catalog   types.Field
		persisted types.Field
		want      types.Variant
	}{
		{"unspecified policy takes catalog policy", location, types.Field{Name: "location"}, types.VariantSystem},
		{"persisted system policy", location, types.Field{Name: "location", Editable: types.EditableSystemButOptional}, types.VariantSystem},
		{"user options field", location, types.Field{Name: "location", Editable: types.EditableUser, Options: []types.Option{}}, types.VariantOptions},
		{"user plain field", location, types.Field{Name: "location", Editable: types.EditableUser}, types.VariantCommon},
		{"common catalog field", types.Field{Name: "company"}, types.Field{Name: "company"}, types.VariantCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeVariant(tt.catalog, tt.persisted))
		})
	}
}

func TestLayerUserOptionsFieldKeepsItsOptions(t *testing.T) {
	catalog := DefaultCatalog().BeforeFields()[2] // location
	persisted := types.Field{
		Name:     "location",
		Editable: types.EditableUser,
		Options:  []types.Option{{Label: "Office", Value: "office"}},
	}

	got := layer(catalog, persisted)
	assert.Equal(t, types.EditableUser, got.Editable)
	assert.Equal(t, persisted.Options, got.Options)
	assert.Empty(t, got.GetOptionsAt)
	assert.Nil(t, got.OptionsInputs)
	assert.Nil(t, got.HideWhenJustOneOption)
	assert.Equal(t, catalog.Type, got.Type)
	assert.Equal(t, catalog.Sources, got.Sources)

	assert.Equal(t, got, layer(catalog, got), "layering is idempotent")
}

func TestLayerUserPlainFieldGainsNoOptions(t *testing.T) {
	catalog := DefaultCatalog().BeforeFields()[2] // location
	got := layer(catalog, types.Field{Name: "location", Editable: types.EditableUser})

	assert.False(t, got.HasOptionAttributes())
	assert.Equal(t, types.VariantCommon, got.Variant())
	assert.Equal(t, catalog.DefaultLabel, got.DefaultLabel)
	assert.Equal(t, catalog.Sources, got.Sources)
}

func TestLayerCommonCatalogSkipsOptions(t *testing.T) {
	catalog := types.Field{Name: "company", Type: types.FieldTypeText, Label: "Company"}
	persisted := types.Field{Name: "company", GetOptionsAt: "somewhere"}

	got := layer(catalog, persisted)
	assert.Equal(t, types.FieldTypeText, got.Type)
	assert.Equal(t, "Company", got.Label)
	assert.Equal(t, "somewhere", got.GetOptionsAt)
}

func TestLayerExtra(t *testing.T) {
	catalog := types.Field{
		Name:     "notes",
		Editable: types.EditableSystemButOptional,
		Extra: map[string]json.RawMessage{
			"variant": json.RawMessage(`"catalog"`),
			"minRows": json.RawMessage(`3`),
		},
	}
	persisted := types.Field{
		Name:  "notes",
		Extra: map[string]json.RawMessage{"variant": json.RawMessage(`"persisted"`)},
	}

	got := layer(catalog, persisted)
	assert.JSONEq(t, `"persisted"`, string(got.Extra["variant"]))
	assert.JSONEq(t, `3`, string(got.Extra["minRows"]))
	assert.Len(t, persisted.Extra, 1, "input must not be modified")
}

func TestLayerDoesNotAliasInputs(t *testing.T) {
	catalog := DefaultCatalog().BeforeFields()[2]
	persisted := types.Field{Name: "location", Sources: []types.Source{{ID: "user", Type: types.SourceTypeUser}}}

	got := layer(catalog, persisted)
	got.Sources[0].ID = "changed"
	*got.Required = true

	assert.Equal(t, "user", persisted.Sources[0].ID)
	assert.False(t, *catalog.Required)
}

func TestLayerIsNoOpOnCompleteField(t *testing.T) {
	for _, f := range append(DefaultCatalog().BeforeFields(), DefaultCatalog().AfterFields()...) {
		t.Run(f.Name, func(t *testing.T) {
			assert.Equal(t, f, layer(f, f))
		})
	}
}
