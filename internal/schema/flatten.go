package schema

import (
	"fmt"
	"slices"
	"strings"

	"pathschema/internal/common"
	"pathschema/internal/errors"
	"pathschema/internal/match"
)

// Flatten returns the template for key with every $key reference replaced,
// recursively, by the referenced key's flattened template. The result has no
// $key tokens left.
func Flatten(doc *Document, key string) (string, error) {
	f := newFlattener(doc)
	return f.flatten(common.FoldName(key), nil, "")
}

// flattener memoizes keys flattened during one call so shared references
// are expanded once.
type flattener struct {
	doc  *Document
	done map[string]string
}

func newFlattener(doc *Document) *flattener {
	return &flattener{doc: doc, done: make(map[string]string)}
}

// flatten expands key. stack holds the keys currently being expanded, outermost first.
func (f *flattener) flatten(key string, stack []string, referrer string) (string, error) {
	if flat, ok := f.done[key]; ok {
		return flat, nil
	}

	if i := slices.Index(stack, key); i >= 0 {
		path := append(slices.Clone(stack[i:]), key)
		return "", errors.WithStack(&CyclicKeyError{Schema: f.doc.Name(), Path: path})
	}

	raw, ok := f.doc.Template(key)
	if !ok {
		return "", unknownKey(f.doc, key, referrer)
	}

	flat, err := f.expand(raw, append(slices.Clip(stack), key), key)
	if err != nil {
		return "", err
	}

	// A literal '$' next to a substitution can form a token that was never
	// in the template.
	if m := keyRefPattern.FindString(flat); m != "" {
		return "", errors.WithStack(&MalformedSchemaError{
			Name:   f.doc.Name(),
			Reason: fmt.Sprintf("key %q flattens to %q, which contains the new reference %s", key, flat, m),
		})
	}

	f.done[key] = flat

	return flat, nil
}

// expand substitutes every $key of text in a single left-to-right pass.
func (f *flattener) expand(text string, stack []string, owner string) (string, error) {
	matches := keyRefPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder

	last := 0

	for _, m := range matches {
		b.WriteString(text[last:m[0]])

		sub, err := f.flatten(common.FoldName(text[m[2]:m[3]]), stack, owner)
		if err != nil {
			return "", err
		}

		b.WriteString(sub)
		last = m[1]
	}

	b.WriteString(text[last:])

	return b.String(), nil
}

func unknownKey(doc *Document, key, referrer string) error {
	err := errors.WithStack(&UnknownKeyError{Key: key, Schema: doc.Name(), Referrer: referrer})
	if suggestions := match.Suggest(key, doc.Keys()); len(suggestions) > 0 {
		err = errors.WithHintf(err, "did you mean %q?", suggestions[0])
	}

	return err
}
