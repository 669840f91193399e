package bookingfields

import (
	"encoding/json"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Anomaly kinds.
const (
	AnomalyDuplicate = "duplicate"
)

// Anomaly is a tolerated irregularity found in a field list. Anomalies do not
// fail validation; they are reported so callers can log or surface them.
type Anomaly struct {
	Kind       string     `json:"kind"`
	Identifier Identifier `json:"identifier"`
	Name       string     `json:"name"`
	Position   int        `json:"position"`
}

// CompleteFieldList is a field list known to contain every system field of
// the catalog it was validated against. Only Validate and Reconcile produce
// one; the zero value holds no fields.
type CompleteFieldList struct {
	fields    []types.Field
	anomalies []Anomaly
}

// Fields returns a copy of the fields in render order.
func (l CompleteFieldList) Fields() []types.Field {
	return types.CloneFields(l.fields)
}

// Len returns the number of fields.
func (l CompleteFieldList) Len() int {
	return len(l.fields)
}

// Names returns the field names in render order.
func (l CompleteFieldList) Names() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the first field whose name normalizes like name.
func (l CompleteFieldList) Lookup(name string) (types.Field, bool) {
	id := Normalize(name)
	for _, f := range l.fields {
		if Normalize(f.Name) == id {
			return f.Clone(), true
		}
	}
	return types.Field{}, false
}

// Anomalies returns the tolerated irregularities found during validation.
func (l CompleteFieldList) Anomalies() []Anomaly {
	return append([]Anomaly(nil), l.anomalies...)
}

// MarshalJSON encodes the list as a JSON array of fields.
func (l CompleteFieldList) MarshalJSON() ([]byte, error) {
	if l.fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.fields)
}
