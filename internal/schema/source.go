package schema

import (
	"io/fs"
	"os"
	"strings"

	"pathschema/internal/errors"
)

// ErrSourceNotExist is wrapped by Source implementations when they have no
// text for a name. The Store turns it into a SchemaNotFoundError.
var ErrSourceNotExist = errors.ErrNotFound

// Raw is undecoded schema text as handed out by a Source.
type Raw struct {
	Data   []byte
	Format Format
	// Origin describes where the text came from, for error messages.
	Origin string
}

// Source supplies schema text by name. Implementations must return an error
// wrapping ErrSourceNotExist for unknown names.
type Source interface {
	Open(name string) (Raw, error)
}

// YAML is a convenience for building in-memory YAML sources.
func YAML(text string) Raw {
	return Raw{Data: []byte(text), Format: FormatYAML, Origin: "inline"}
}

// MapSource serves schemas from memory.
type MapSource map[string]Raw

// Open implements Source.
func (m MapSource) Open(name string) (Raw, error) {
	raw, ok := m[name]
	if !ok {
		return Raw{}, errors.Wrapf(ErrSourceNotExist, "no in-memory schema %q", name)
	}

	if raw.Origin == "" {
		raw.Origin = "memory:" + name
	}

	return raw, nil
}

// FSSource reads "<name><ext>" files from a file system, trying each
// extension in order.
type FSSource struct {
	FS         fs.FS
	Extensions []string
}

// NewFSSource returns a source over fsys using the default extensions
// (.schema, .yaml, .yml, .toml, .json).
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{FS: fsys, Extensions: defaultExtensions}
}

// NewDirSource returns an FSSource rooted at dir.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// Open implements Source.
func (s *FSSource) Open(name string) (Raw, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(name) {
		return Raw{}, errors.Wrapf(ErrSourceNotExist, "invalid schema name %q", name)
	}

	exts := s.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}

	for _, ext := range exts {
		file := name + ext

		data, err := fs.ReadFile(s.FS, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return Raw{}, errors.Wrapf(err, "reading schema file %s", file)
		}

		return Raw{Data: data, Format: FormatFromExt(ext), Origin: file}, nil
	}

	return Raw{}, errors.Wrapf(ErrSourceNotExist, "no schema file for %q (tried %s)", name, strings.Join(exts, ", "))
}

// ChainSource tries each source in order and returns the first hit.
// Errors other than "not exist" stop the search.
type ChainSource []Source

// Open implements Source.
func (c ChainSource) Open(name string) (Raw, error) {
	for _, src := range c {
		raw, err := src.Open(name)
		if err == nil {
			return raw, nil
		}

		if !errors.Is(err, ErrSourceNotExist) {
			return Raw{}, err
		}
	}

	return Raw{}, errors.Wrapf(ErrSourceNotExist, "schema %q not found in any source", name)
}
