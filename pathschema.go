// Package pathschema resolves studio path templates against production
// entities.
//
// A schema is a named, flat table of templates. Templates reference other
// keys of the same schema with $key and entity attributes with
// <entity.attr[.attr...]>:
//
//	project_root: "<project.root>"
//	shot_root:    "$project_root/sequence/<sequence.name>/<shot.name>"
//
// Resolving "shot_root" with only a shot in the context works because the
// shot's parents (sequence, then project) are added automatically:
//
//	engine := pathschema.New(pathschema.WithDir("/studio/schemas"))
//	path, err := engine.Resolve("shot_root", pathschema.Context{"shot": shot}, "film")
//
// Every failure is a typed error matchable with errors.As.
package pathschema

import (
	"iter"

	"go.uber.org/zap"

	"pathschema/internal/diagnostic"
	"pathschema/internal/entity"
	"pathschema/internal/resolve"
	"pathschema/internal/schema"
)

// DefaultDir is the schema directory used when no source is given.
const DefaultDir = "schemas"

type (
	Entity     = entity.Entity
	Attributer = entity.Attributer
	Context    = entity.Context
	Record     = entity.Record
	Folder     = resolve.Folder
	Source     = schema.Source
	Raw        = schema.Raw

	Diagnostics = diagnostic.Diagnostics

	SchemaNotFoundError      = schema.SchemaNotFoundError
	MalformedSchemaError     = schema.MalformedSchemaError
	UnknownKeyError          = schema.UnknownKeyError
	CyclicKeyError           = schema.CyclicKeyError
	MissingFieldsError       = resolve.MissingFieldsError
	AttributeResolutionError = entity.AttributeResolutionError
	HierarchyTooDeepError    = entity.HierarchyTooDeepError
)

// Engine owns a schema cache and resolves paths from it. Create one per
// process and share it; it is safe for concurrent use.
type Engine struct {
	store    *schema.Store
	resolver *resolve.Resolver
}

type engineOptions struct {
	source Source
	log    *zap.Logger
	config resolve.Config
}

// Option configures New.
type Option func(*engineOptions)

// WithSource reads schemas from src.
func WithSource(src Source) Option {
	return func(o *engineOptions) { o.source = src }
}

// WithDir reads "<name>.schema" (or .yaml, .yml, .toml, .json) files from dir.
func WithDir(dir string) Option {
	return WithSource(schema.NewDirSource(dir))
}

// WithLogger sets the logger. Without it the engine is silent.
func WithLogger(l *zap.Logger) Option {
	return func(o *engineOptions) { o.log = l }
}

// WithMaxDepth bounds entity parent walks.
func WithMaxDepth(n int) Option {
	return func(o *engineOptions) { o.config.MaxDepth = n }
}

// WithCollisionWarnings turns logging of conflicting ancestors on or off.
// It is on by default.
func WithCollisionWarnings(on bool) Option {
	return func(o *engineOptions) { o.config.WarnCollisions = on }
}

// New returns an Engine. Without WithSource or WithDir it reads DefaultDir.
func New(opts ...Option) *Engine {
	o := engineOptions{config: resolve.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.source == nil {
		o.source = schema.NewDirSource(DefaultDir)
	}

	store := schema.NewStore(o.source, schema.WithLogger(o.log))

	return &Engine{
		store:    store,
		resolver: resolve.NewResolver(store, o.config, o.log),
	}
}

// Resolve returns the path for key in the named schema.
func (e *Engine) Resolve(key string, ctx Context, schemaName string) (string, error) {
	return e.resolver.Resolve(key, ctx, schemaName)
}

// RequiredFieldsFor returns the entity names key needs, in template order.
func (e *Engine) RequiredFieldsFor(key, schemaName string) ([]string, error) {
	return e.resolver.RequiredFieldsFor(key, schemaName)
}

// ReadSchema returns a copy of the named schema's raw templates.
func (e *Engine) ReadSchema(schemaName string) (map[string]string, error) {
	return e.resolver.ReadSchema(schemaName)
}

// Flatten returns key's template with all $key references expanded.
func (e *Engine) Flatten(key, schemaName string) (string, error) {
	flat, err := e.store.Flatten(schemaName, key)
	if err != nil {
		return "", err
	}

	return flat.Template, nil
}

// Folders lazily resolves the named folder tree.
func (e *Engine) Folders(treeName string, ctx Context) iter.Seq2[Folder, error] {
	return e.resolver.Folders(treeName, ctx)
}

// Lint checks the named schema for broken references, cycles and malformed
// placeholders.
func (e *Engine) Lint(schemaName string) (*Diagnostics, error) {
	doc, err := e.store.Read(schemaName)
	if err != nil {
		return nil, err
	}

	return schema.Validate(doc), nil
}

// KeyOrder returns the schema's keys with every key after the keys it
// references.
func (e *Engine) KeyOrder(schemaName string) ([]string, error) {
	doc, err := e.store.Read(schemaName)
	if err != nil {
		return nil, err
	}

	return schema.KeyOrder(doc)
}

// YAML wraps inline YAML schema text for MapSource.
func YAML(text string) Raw {
	return schema.YAML(text)
}

// MapSource serves schemas from memory.
type MapSource = schema.MapSource
