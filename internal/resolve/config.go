package resolve

import (
	"pathschema/internal/entity"
)

// Config holds resolver settings.
type Config struct {
	// MaxDepth bounds entity parent walks.
	MaxDepth int
	// WarnCollisions logs ancestors dropped during context expansion.
	WarnCollisions bool
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       entity.DefaultMaxDepth,
		WarnCollisions: true,
	}
}
