package schema

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"pathschema/internal/common"
	"pathschema/internal/errors"
	"pathschema/internal/logger"
)

// Flat is a flattened template together with what was extracted from it.
// All fields are pure functions of the schema text and safe to share.
type Flat struct {
	Schema       string
	Key          string
	Template     string
	Fields       []string
	Placeholders []Placeholder
}

// Store loads schema documents and folder trees from a Source once and keeps
// them for its own lifetime. It also memoizes flattened templates per
// (schema, key). A Store is safe for concurrent use; construct one per
// process and share it.
type Store struct {
	source Source
	log    *zap.Logger

	mu    sync.RWMutex
	docs  map[string]*Document
	trees map[string]*Tree
	flats map[flatKey]*Flat

	group singleflight.Group
}

type flatKey struct {
	schema string
	key    string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore returns a Store reading from src.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		source: src,
		docs:   make(map[string]*Document),
		trees:  make(map[string]*Tree),
		flats:  make(map[flatKey]*Flat),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = logger.OrNop(s.log)

	return s
}

// Read returns the named schema document, loading it on first use.
// Later calls return the same *Document without consulting the source.
func (s *Store) Read(name string) (*Document, error) {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	doc, ok := s.docs[name]
	s.mu.RUnlock()

	if ok {
		return doc, nil
	}

	v, err, _ := s.group.Do("doc\x00"+name, func() (any, error) {
		// Another caller may have finished loading while we waited.
		s.mu.RLock()
		doc, ok := s.docs[name]
		s.mu.RUnlock()

		if ok {
			return doc, nil
		}

		raw, err := s.open(name, name)
		if err != nil {
			return nil, err
		}

		doc, err = ParseDocument(name, raw)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.docs[name] = doc
		s.mu.Unlock()

		s.log.Debug("loaded schema",
			zap.String("schema", name),
			zap.String("origin", raw.Origin),
			zap.Stringer("format", raw.Format),
			zap.Int("keys", doc.Len()))

		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Document), nil
}

// ReadTree returns the named folder tree, stored under TreeSourceName(name).
func (s *Store) ReadTree(name string) (*Tree, error) {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	tree, ok := s.trees[name]
	s.mu.RUnlock()

	if ok {
		return tree, nil
	}

	v, err, _ := s.group.Do("tree\x00"+name, func() (any, error) {
		s.mu.RLock()
		tree, ok := s.trees[name]
		s.mu.RUnlock()

		if ok {
			return tree, nil
		}

		raw, err := s.open(name, TreeSourceName(name))
		if err != nil {
			return nil, err
		}

		tree, err = ParseTree(name, raw)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.trees[name] = tree
		s.mu.Unlock()

		s.log.Debug("loaded folder tree",
			zap.String("schema", name),
			zap.String("origin", raw.Origin),
			zap.Int("folders", tree.Root.Count()))

		return tree, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Tree), nil
}

// Map returns a copy of the named schema's key -> raw template table.
func (s *Store) Map(name string) (map[string]string, error) {
	doc, err := s.Read(name)
	if err != nil {
		return nil, err
	}

	return doc.Map(), nil
}

// Flatten returns the flattened template for key in the named schema,
// computing it once per (schema, key).
func (s *Store) Flatten(schemaName, key string) (*Flat, error) {
	doc, err := s.Read(schemaName)
	if err != nil {
		return nil, err
	}

	fk := flatKey{schema: doc.Name(), key: common.FoldName(key)}

	s.mu.RLock()
	flat, ok := s.flats[fk]
	s.mu.RUnlock()

	if ok {
		return flat, nil
	}

	// Flattening is pure; concurrent first computations are equivalent and
	// the last writer wins.
	text, err := Flatten(doc, fk.key)
	if err != nil {
		return nil, err
	}

	flat = &Flat{
		Schema:       doc.Name(),
		Key:          fk.key,
		Template:     text,
		Fields:       RequiredFields(text),
		Placeholders: Placeholders(text),
	}

	s.mu.Lock()
	s.flats[fk] = flat
	s.mu.Unlock()

	return flat, nil
}

func (s *Store) open(name, sourceName string) (Raw, error) {
	if s.source == nil {
		return Raw{}, errors.WithStack(&SchemaNotFoundError{Name: name, Err: errors.New("no schema source configured")})
	}

	raw, err := s.source.Open(sourceName)
	if errors.IsNotFound(err) {
		return Raw{}, errors.WithStack(&SchemaNotFoundError{Name: name, Err: err})
	}

	if err != nil {
		return Raw{}, errors.Wrapf(err, "loading schema %q", name)
	}

	return raw, nil
}
