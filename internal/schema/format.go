package schema

import (
	"path"
	"strings"

	"pathschema/internal/errors"
)

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Format is the text encoding of a schema source.
type Format int

const (
	FormatUnknown Format = iota // unknown
	FormatYAML                  // yaml
	FormatTOML                  // toml
	FormatJSON                  // json
)

// defaultExtensions is the lookup order used by FSSource. ".schema" is the
// historical studio file extension and holds YAML.
var defaultExtensions = []string{".schema", ".yaml", ".yml", ".toml", ".json"}

// FormatFromExt maps a file extension (with or without the dot) to a Format.
func FormatFromExt(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "schema", "yaml", "yml":
		return FormatYAML
	case "toml":
		return FormatTOML
	case "json", "jsonc":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// FormatFromPath maps a file name to a Format by its extension.
func FormatFromPath(p string) Format {
	return FormatFromExt(path.Ext(p))
}

// ParseFormat parses a format name as stored in SQL sources. The empty
// string means YAML.
func ParseFormat(s string) (Format, error) {
	if strings.TrimSpace(s) == "" {
		return FormatYAML, nil
	}

	if f := FormatFromExt(s); f != FormatUnknown {
		return f, nil
	}

	return FormatUnknown, errors.Newf("unknown schema format %q", s)
}
