package common

import "strings"

// UnknownStr is the String() value for out-of-range enums.
const UnknownStr = "unknown"

// FoldName normalizes schema keys and entity-type names, which are compared
// case-insensitively everywhere.
func FoldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
