package bookingfields

import "github.com/mesh-intelligence/bookingfields/pkg/types"

// Validate checks fields against the default catalog.
func Validate(fields []types.Field) (CompleteFieldList, error) {
	return defaultCatalog.Validate(fields)
}

// Validate checks that every catalog field is present in fields, matched by
// identifier. A missing field yields a *MissingSystemFieldError. Repeated
// identifiers are not errors; they are reported as anomalies on the result.
func (c *Catalog) Validate(fields []types.Field) (CompleteFieldList, error) {
	counts := countIdentifiers(fields)
	for _, name := range c.Names() {
		if counts[Normalize(name)] == 0 {
			return CompleteFieldList{}, &MissingSystemFieldError{Field: name}
		}
	}

	return CompleteFieldList{
		fields:    types.CloneFields(fields),
		anomalies: findDuplicates(fields),
	}, nil
}

func countIdentifiers(fields []types.Field) map[Identifier]int {
	counts := make(map[Identifier]int, len(fields))
	for _, f := range fields {
		counts[Normalize(f.Name)]++
	}
	return counts
}

// findDuplicates reports every occurrence of an identifier after its first.
func findDuplicates(fields []types.Field) []Anomaly {
	seen := make(map[Identifier]bool, len(fields))
	var anomalies []Anomaly
	for i, f := range fields {
		id := Normalize(f.Name)
		if seen[id] {
			anomalies = append(anomalies, Anomaly{
				Kind:       AnomalyDuplicate,
				Identifier: id,
				Name:       f.Name,
				Position:   i,
			})
			continue
		}
		seen[id] = true
	}
	return anomalies
}
