package types

import (
	"encoding/json"
	"reflect"
)

// knownFieldKeys lists the JSON attributes modelled by Field. Everything else
// lands in Field.Extra.
var knownFieldKeys = []string{
	"name", "type", "editable", "required", "hidden",
	"label", "defaultLabel", "placeholder", "defaultPlaceholder",
	"sources", "views",
	"options", "optionsInputs", "getOptionsAt", "hideWhenJustOneOption",
}

// UnmarshalJSON decodes a field, keeping unmodelled attributes in Extra and
// the encoded form for MarshalJSON.
func (f *Field) UnmarshalJSON(data []byte) error {
	type plain Field
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownFieldKeys {
		delete(raw, k)
	}
	p.Extra = nil
	if len(raw) > 0 {
		p.Extra = raw
	}
	p.raw = append(json.RawMessage(nil), data...)

	*f = Field(p)
	return nil
}

// MarshalJSON encodes a field. A decoded field that still holds the decoded
// values is written back exactly as it was read, keeping key order and
// explicit empty or null attributes. Extra attributes never override
// modelled ones.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.raw != nil && f.unchangedSinceDecode() {
		return f.raw, nil
	}

	type plain Field
	data, err := json.Marshal(plain(f))
	if err != nil {
		return nil, err
	}
	if len(f.Extra) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k, v := range f.Extra {
		if _, ok := obj[k]; !ok {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

// unchangedSinceDecode reports whether f holds exactly the values decoded
// from f.raw.
func (f Field) unchangedSinceDecode() bool {
	var decoded Field
	if err := decoded.UnmarshalJSON(f.raw); err != nil {
		return false
	}
	decoded.raw, f.raw = nil, nil
	return reflect.DeepEqual(decoded, f)
}
