package schema

import (
	"regexp"
	"strings"

	"pathschema/internal/common"
	"pathschema/internal/errors"
)

var (
	// placeholderPattern matches <name> and <name.attr[.attr...]>.
	placeholderPattern = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)>`)
	// keyRefPattern matches $key indirection. \w has no dot, so "$a.b" is
	// "$a" followed by literal ".b".
	keyRefPattern = regexp.MustCompile(`\$(\w+)`)
)

// Placeholder is one <entity.attr...> token of a flattened template.
type Placeholder struct {
	// Raw is the token as written, including the angle brackets.
	Raw string
	// Start and End are byte offsets of Raw in the template.
	Start, End int
	// Entity is the lower-cased leading name.
	Entity string
	// Attrs is the attribute chain after the entity, possibly empty.
	Attrs []string
}

// Path returns the dotted path without brackets, e.g. "shot.sequence.name".
func (p Placeholder) Path() string {
	return strings.Join(append([]string{p.Entity}, p.Attrs...), ".")
}

// ParsePlaceholder parses a single token. Both "<shot.name>" and "shot.name"
// are accepted.
func ParsePlaceholder(token string) (Placeholder, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
	if inner == "" {
		return Placeholder{}, errors.Newf("invalid placeholder %q: empty", token)
	}

	var segments []string

	for part := range strings.SplitSeq(inner, ".") {
		if part == "" {
			return Placeholder{}, errors.Newf("invalid placeholder %q: empty segment", token)
		}

		if !isValidIdent(part) {
			return Placeholder{}, errors.Newf("invalid placeholder %q: invalid identifier %q", token, part)
		}

		segments = append(segments, part)
	}

	return Placeholder{
		Raw:    "<" + inner + ">",
		End:    len(inner) + 2,
		Entity: common.FoldName(segments[0]),
		Attrs:  segments[1:],
	}, nil
}

// Placeholders returns every placeholder token of a flattened template in
// order of appearance, duplicates included.
func Placeholders(flat string) []Placeholder {
	matches := placeholderPattern.FindAllStringSubmatchIndex(flat, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Placeholder, 0, len(matches))

	for _, m := range matches {
		segments := strings.Split(flat[m[2]:m[3]], ".")
		out = append(out, Placeholder{
			Raw:    flat[m[0]:m[1]],
			Start:  m[0],
			End:    m[1],
			Entity: common.FoldName(segments[0]),
			Attrs:  segments[1:],
		})
	}

	return out
}

// RequiredFields returns the distinct entity names a flattened template
// references, in first-appearance order.
func RequiredFields(flat string) []string {
	var names []string
	for _, p := range Placeholders(flat) {
		names = append(names, p.Entity)
	}

	return common.Unique(names)
}

// KeyRefs returns the lower-cased $key references of a raw template in order
// of appearance, duplicates removed.
func KeyRefs(raw string) []string {
	var refs []string
	for _, m := range keyRefPattern.FindAllStringSubmatch(raw, -1) {
		refs = append(refs, common.FoldName(m[1]))
	}

	return common.Unique(refs)
}

// isValidIdent checks [A-Za-z_][A-Za-z0-9_]*.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
