package resolve

import (
	"fmt"
	"strings"
)

// MissingFieldsError lists every entity name a template needs that the
// expanded context does not provide.
type MissingFieldsError struct {
	Key    string
	Schema string
	// Fields are the missing names in template order.
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing fields for key %q in schema %q: %s",
		e.Key, e.Schema, strings.Join(e.Fields, ", "))
}
