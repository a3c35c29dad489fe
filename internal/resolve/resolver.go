package resolve

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pathschema/internal/common"
	"pathschema/internal/entity"
	"pathschema/internal/errors"
	"pathschema/internal/logger"
	"pathschema/internal/schema"
)

// Resolver resolves schema keys against entity contexts. It holds no
// per-call state and is safe for concurrent use.
type Resolver struct {
	store  *schema.Store
	config Config
	log    *zap.Logger
}

// NewResolver creates a Resolver over store. A nil log discards output.
func NewResolver(store *schema.Store, config Config, log *zap.Logger) *Resolver {
	if config.MaxDepth <= 0 {
		config.MaxDepth = entity.DefaultMaxDepth
	}

	return &Resolver{
		store:  store,
		config: config,
		log:    logger.OrNop(log),
	}
}

// Store returns the schema store the resolver reads from.
func (r *Resolver) Store() *schema.Store {
	return r.store
}

// Resolve returns the path for key in the named schema, filled from ctx.
// ctx is read, never modified or retained.
func (r *Resolver) Resolve(key string, ctx entity.Context, schemaName string) (string, error) {
	flat, err := r.store.Flatten(schemaName, key)
	if err != nil {
		return "", err
	}

	expanded, err := r.expand(ctx)
	if err != nil {
		return "", err
	}

	if missing := common.Subtract(flat.Fields, map[string]any(expanded)); len(missing) > 0 {
		return "", missingFields(flat.Key, flat.Schema, missing)
	}

	out, err := substitute(flat.Template, flat.Placeholders, expanded)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %q in schema %q", flat.Key, flat.Schema)
	}

	r.log.Debug("resolved path",
		zap.String("schema", flat.Schema),
		zap.String("key", flat.Key),
		zap.String("path", out))

	return out, nil
}

// RequiredFieldsFor returns the entity names key needs, in template order,
// without resolving anything.
func (r *Resolver) RequiredFieldsFor(key, schemaName string) ([]string, error) {
	flat, err := r.store.Flatten(schemaName, key)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), flat.Fields...), nil
}

// ReadSchema returns a copy of the named schema's raw templates.
func (r *Resolver) ReadSchema(schemaName string) (map[string]string, error) {
	return r.store.Map(schemaName)
}

// Expand closes ctx over entity parents using the resolver's depth limit,
// logging collisions.
func (r *Resolver) Expand(ctx entity.Context) (entity.Context, error) {
	return r.expand(ctx)
}

func (r *Resolver) expand(ctx entity.Context) (entity.Context, error) {
	expanded, collisions, err := entity.Expand(ctx, entity.Options{MaxDepth: r.config.MaxDepth})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if r.config.WarnCollisions {
		for _, c := range collisions {
			r.log.Warn("conflicting ancestor dropped",
				zap.String("kind", c.Kind),
				zap.String("via", c.Via),
				zap.String("kept", describe(c.Kept)),
				zap.String("dropped", describe(c.Dropped)))
		}
	}

	return expanded, nil
}

func missingFields(key, schemaName string, fields []string) error {
	err := errors.WithStack(&MissingFieldsError{Key: key, Schema: schemaName, Fields: fields})

	return errors.WithHintf(err,
		"supply %s in the context, or an entity whose parents include %s",
		strings.Join(fields, ", "), pronoun(len(fields)))
}

func pronoun(n int) string {
	if n == 1 {
		return "it"
	}

	return "them"
}

// substitute replaces every placeholder of text with its rendered value.
// Replacement text is never scanned again.
func substitute(text string, phs []schema.Placeholder, ctx entity.Context) (string, error) {
	var b strings.Builder

	b.Grow(len(text))

	last := 0

	for _, p := range phs {
		v, err := lookup(p, ctx)
		if err != nil {
			return "", err
		}

		b.WriteString(text[last:p.Start])
		b.WriteString(v)
		last = p.End
	}

	b.WriteString(text[last:])

	return b.String(), nil
}

// lookup walks one placeholder: the entity, then one attribute per hop.
func lookup(p schema.Placeholder, ctx entity.Context) (string, error) {
	fail := func(hop, on, reason string) error {
		return errors.WithStack(&entity.AttributeResolutionError{Placeholder: p.Raw, Hop: hop, On: on, Reason: reason})
	}

	v, ok := ctx[p.Entity]
	if !ok || entity.IsAbsent(v) {
		return "", fail(p.Entity, "", entity.ReasonAbsent)
	}

	hop := p.Entity

	for _, attr := range p.Attrs {
		next, found := entity.Attr(v, attr)
		if !found {
			return "", fail(attr, typeName(v), entity.ReasonNoAttribute)
		}

		if entity.IsAbsent(next) {
			return "", fail(attr, typeName(v), entity.ReasonAbsent)
		}

		v, hop = next, attr
	}

	out, ok := entity.Render(v)
	if !ok {
		return "", fail(hop, typeName(v), entity.ReasonNotRenderable)
	}

	return out, nil
}

func typeName(v any) string {
	if e, ok := v.(entity.Entity); ok {
		return e.Kind()
	}

	return fmt.Sprintf("%T", v)
}

func describe(v any) string {
	if s, ok := entity.Render(v); ok {
		return typeName(v) + " " + s
	}

	return typeName(v)
}
