// Package errors provides error handling for pathschema.
//
// This package re-exports github.com/cockroachdb/errors so every package
// wraps, annotates and inspects errors the same way:
//
//	// Wrap with context
//	if err := src.Open(name); err != nil {
//	    return errors.Wrapf(err, "opening schema %q", name)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "did you mean \"shot_root\"?")
//
//	// Check errors
//	var missing *resolve.MissingFieldsError
//	if errors.As(err, &missing) {
//	    // report missing.Fields
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// ErrNotFound is the shared sentinel for lookups that found nothing.
// Source implementations wrap it so callers can test with errors.Is.
var ErrNotFound = New("not found")

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
