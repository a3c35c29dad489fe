package schema

import (
	"fmt"
	"strings"
)

// SchemaNotFoundError is returned when no source knows the schema name.
type SchemaNotFoundError struct {
	Name string
	Err  error
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema %q not found", e.Name)
}

func (e *SchemaNotFoundError) Unwrap() error { return e.Err }

// MalformedSchemaError is returned when schema text is not exactly one
// top-level mapping of the expected shape.
type MalformedSchemaError struct {
	Name   string
	Origin string
	Reason string
	Err    error
}

func (e *MalformedSchemaError) Error() string {
	msg := fmt.Sprintf("malformed schema %q: %s", e.Name, e.Reason)
	if e.Origin != "" {
		msg += " (" + e.Origin + ")"
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *MalformedSchemaError) Unwrap() error { return e.Err }

// UnknownKeyError is returned when a key is not defined in a schema, either
// requested directly or referenced through $key indirection.
type UnknownKeyError struct {
	Key    string
	Schema string
	// Referrer is the key whose template referenced Key, empty for direct lookups.
	Referrer string
}

func (e *UnknownKeyError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("unknown key %q referenced by %q in schema %q", e.Key, e.Referrer, e.Schema)
	}

	return fmt.Sprintf("unknown key %q in schema %q", e.Key, e.Schema)
}

// CyclicKeyError is returned when $key references loop back on themselves.
// Path starts and ends with the repeated key.
type CyclicKeyError struct {
	Schema string
	Path   []string
}

func (e *CyclicKeyError) Error() string {
	return fmt.Sprintf("cyclic key reference in schema %q: %s", e.Schema, strings.Join(e.Path, " -> "))
}
