package bookingfields

import (
	"strings"
	"unicode"
)

// Identifier is the canonical key used to match booking fields. Two names a
// person would read as the same field normalize to the same Identifier.
type Identifier string

// Normalize returns the matching identifier for a field name. It folds case
// and drops separators (underscore, hyphen, dot and whitespace). Names that
// differ in any other way are different fields. Normalize is total and
// deterministic.
func Normalize(name string) Identifier {
	return Identifier(fold(name))
}

// fold lowercases s and strips separators.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
