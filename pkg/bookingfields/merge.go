package bookingfields

import (
	"encoding/json"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// layer returns persisted with every attribute it leaves unspecified filled
// from catalog. Persisted values always win. The merge variant decides which
// attribute groups the catalog fills:
//
//   - system: common and options attributes, each one individually
//   - options: common attributes only; the user's options group is kept as supplied
//   - common: common attributes only; a user-owned field never gains options
func layer(catalog, persisted types.Field) types.Field {
	out := persisted.Clone()
	base := catalog.Clone()

	switch mergeVariant(catalog, persisted) {
	case types.VariantSystem:
		layerCommon(&out, base)
		layerOptions(&out, base)
	case types.VariantOptions:
		layerCommon(&out, base)
	case types.VariantCommon:
		layerCommon(&out, base)
	}
	layerExtra(&out, base)
	return out
}

// mergeVariant is the variant of persisted once its unspecified editable
// policy is taken from catalog.
func mergeVariant(catalog, persisted types.Field) types.Variant {
	if persisted.Editable == "" {
		persisted.Editable = catalog.Editable
	}
	return persisted.Variant()
}

func layerCommon(out *types.Field, base types.Field) {
	out.Name = first(out.Name, base.Name)
	out.Type = first(out.Type, base.Type)
	out.Editable = first(out.Editable, base.Editable)
	out.Required = firstPtr(out.Required, base.Required)
	out.Hidden = firstPtr(out.Hidden, base.Hidden)
	out.Label = first(out.Label, base.Label)
	out.DefaultLabel = first(out.DefaultLabel, base.DefaultLabel)
	out.Placeholder = first(out.Placeholder, base.Placeholder)
	out.DefaultPlaceholder = first(out.DefaultPlaceholder, base.DefaultPlaceholder)
	out.Sources = firstSlice(out.Sources, base.Sources)
	out.Views = firstSlice(out.Views, base.Views)
}

func layerOptions(out *types.Field, base types.Field) {
	out.Options = firstSlice(out.Options, base.Options)
	out.OptionsInputs = firstMap(out.OptionsInputs, base.OptionsInputs)
	out.GetOptionsAt = first(out.GetOptionsAt, base.GetOptionsAt)
	out.HideWhenJustOneOption = firstPtr(out.HideWhenJustOneOption, base.HideWhenJustOneOption)
}

func layerExtra(out *types.Field, base types.Field) {
	if len(base.Extra) == 0 {
		return
	}
	if out.Extra == nil {
		out.Extra = make(map[string]json.RawMessage, len(base.Extra))
	}
	for k, v := range base.Extra {
		if _, ok := out.Extra[k]; !ok {
			out.Extra[k] = v
		}
	}
}

func first[T ~string](persisted, catalog T) T {
	if persisted != "" {
		return persisted
	}
	return catalog
}

func firstPtr[T any](persisted, catalog *T) *T {
	if persisted != nil {
		return persisted
	}
	return catalog
}

func firstSlice[S ~[]E, E any](persisted, catalog S) S {
	if persisted != nil {
		return persisted
	}
	return catalog
}

func firstMap[M ~map[K]V, K comparable, V any](persisted, catalog M) M {
	if persisted != nil {
		return persisted
	}
	return catalog
}
