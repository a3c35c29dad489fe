package entity

import (
	"fmt"
)

// Reasons reported by AttributeResolutionError.
const (
	ReasonAbsent        = "value is absent"
	ReasonNoAttribute   = "no such attribute"
	ReasonNotRenderable = "value cannot be rendered as text"
)

// AttributeResolutionError reports a placeholder whose value could not be
// produced: a hop names no attribute, a value on the way is nil, or the
// final value is not text-like.
type AttributeResolutionError struct {
	// Placeholder is the token as written, e.g. "<shot.sequence.name>".
	Placeholder string
	// Hop is the name that failed, the entity name for the first hop.
	Hop string
	// On names the value the hop was tried on, when there was one.
	On     string
	Reason string
}

func (e *AttributeResolutionError) Error() string {
	if e.On != "" {
		return fmt.Sprintf("cannot resolve %s at %q on %s: %s", e.Placeholder, e.Hop, e.On, e.Reason)
	}

	return fmt.Sprintf("cannot resolve %s at %q: %s", e.Placeholder, e.Hop, e.Reason)
}

// HierarchyTooDeepError reports a parent chain longer than the configured
// limit, usually a loop.
type HierarchyTooDeepError struct {
	// Start is the context key the walk began from.
	Start string
	Limit int
}

func (e *HierarchyTooDeepError) Error() string {
	return fmt.Sprintf("parent chain of %q exceeds %d levels", e.Start, e.Limit)
}
