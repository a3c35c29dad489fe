package schema

import (
	"fmt"
	"regexp"
	"strings"

	"pathschema/internal/diagnostic"
	"pathschema/internal/errors"
	"pathschema/internal/match"
)

// bracketPattern finds anything that looks like a placeholder, valid or not.
var bracketPattern = regexp.MustCompile(`<[^<>]*>`)

// Validate lints every key of doc. It is a structural check only: it cannot
// know which entities a caller will supply.
func Validate(doc *Document) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("schema_is_nil", "schema document is nil", "", "")
		return res
	}

	keys := doc.Keys()
	reportedCycles := map[string]struct{}{}

	referenced := map[string]struct{}{}
	for _, key := range keys {
		raw, _ := doc.Template(key)
		for _, ref := range KeyRefs(raw) {
			referenced[ref] = struct{}{}
		}
	}

	for _, key := range keys {
		raw, _ := doc.Template(key)

		if strings.TrimSpace(raw) == "" {
			res.AddWarning("empty_template", "template is empty", key, "")
			continue
		}

		validateRefs(res, doc, key, raw)
		validateBrackets(res, key, raw)

		flat, err := Flatten(doc, key)

		var (
			cyc       *CyclicKeyError
			malformed *MalformedSchemaError
		)

		switch {
		case errors.As(err, &cyc):
			id := cycleID(cyc.Path)
			if _, seen := reportedCycles[id]; !seen {
				reportedCycles[id] = struct{}{}
				res.AddError("key_cycle", "cyclic key reference: "+strings.Join(cyc.Path, " -> "), key, "")
			}
		case errors.As(err, &malformed):
			res.AddError("joined_key_ref", malformed.Reason, key, "")
		case err != nil:
			// Unknown references were already reported by validateRefs.
			continue
		case len(Placeholders(flat)) == 0:
			if _, ok := referenced[key]; !ok {
				res.AddInfo("literal_template", "template has no entity placeholders", key, "")
			}
		}
	}

	return res
}

func validateRefs(res *diagnostic.Diagnostics, doc *Document, key, raw string) {
	for _, ref := range KeyRefs(raw) {
		if _, ok := doc.Template(ref); ok {
			continue
		}

		res.AddError("unknown_key_ref",
			fmt.Sprintf("reference to unknown key %q", ref),
			key, "$"+ref, match.Suggest(ref, doc.Keys())...)
	}
}

func validateBrackets(res *diagnostic.Diagnostics, key, raw string) {
	for _, tok := range bracketPattern.FindAllString(raw, -1) {
		if _, err := ParsePlaceholder(tok); err != nil {
			res.AddError("invalid_placeholder", err.Error(), key, tok)
		}
	}

	if rest := bracketPattern.ReplaceAllString(raw, ""); strings.Contains(rest, "<") {
		res.AddWarning("unclosed_placeholder", "template contains '<' without a matching '>'", key, "")
	}
}

// cycleID identifies a cycle regardless of which key it was entered from.
func cycleID(path []string) string {
	if len(path) < 2 {
		return strings.Join(path, ",")
	}

	loop := path[:len(path)-1]
	start := 0

	for i, k := range loop {
		if k < loop[start] {
			start = i
		}
	}

	rotated := append(append([]string{}, loop[start:]...), loop[:start]...)

	return strings.Join(rotated, ",")
}
