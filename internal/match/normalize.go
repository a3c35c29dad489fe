package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a schema key or entity-type name for fuzzy matching:
// CamelCase boundaries and separators (_ - . space) are dropped and the
// result is lower-cased, so "ShotRoot", "shot_root" and "shot-root" compare
// equal.
func NormalizeName(s string) string {
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

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
