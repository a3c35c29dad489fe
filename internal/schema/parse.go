package schema

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"pathschema/internal/errors"
)

// ParseDocument decodes raw into a flat key -> template Document.
func ParseDocument(name string, raw Raw) (*Document, error) {
	if raw.Format == FormatTOML {
		var m map[string]any
		if err := decodeTOML(name, raw, &m, "invalid TOML"); err != nil {
			return nil, err
		}

		return documentFromMap(name, raw, m)
	}

	root, err := mappingRoot(name, raw)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], deref(root.Content[i+1])

		if k.Kind != yaml.ScalarNode {
			return nil, malformed(name, raw, fmt.Sprintf("line %d: keys must be strings, found %s", k.Line, kindName(k.Kind)), nil)
		}

		if v.Kind != yaml.ScalarNode {
			return nil, malformed(name, raw, fmt.Sprintf("line %d: value for key %q must be a template string, found %s", v.Line, k.Value, kindName(v.Kind)), nil)
		}

		if v.Tag == "!!null" {
			return nil, malformed(name, raw, fmt.Sprintf("line %d: value for key %q is null", v.Line, k.Value), nil)
		}

		if _, dup := entries[k.Value]; dup {
			return nil, malformed(name, raw, fmt.Sprintf("line %d: duplicate key %q", k.Line, k.Value), nil)
		}

		entries[k.Value] = v.Value
	}

	doc, err := NewDocument(name, entries)
	if err != nil {
		return nil, withOrigin(err, raw)
	}

	return doc, nil
}

// ParseTree decodes raw into a folder Tree.
func ParseTree(name string, raw Raw) (*Tree, error) {
	var root FolderNode

	if raw.Format == FormatTOML {
		if err := decodeTOML(name, raw, &root, "invalid TOML folder tree"); err != nil {
			return nil, err
		}
	} else {
		node, err := mappingRoot(name, raw)
		if err != nil {
			return nil, err
		}

		if err := node.Decode(&root); err != nil {
			return nil, malformed(name, raw, "invalid folder tree", err)
		}
	}

	if err := root.validate(""); err != nil {
		return nil, malformed(name, raw, err.Error(), nil)
	}

	return &Tree{Name: name, Root: root}, nil
}

func documentFromMap(name string, raw Raw, m map[string]any) (*Document, error) {
	entries := make(map[string]string, len(m))

	for k, v := range m {
		switch tv := v.(type) {
		case string:
			entries[k] = tv
		case map[string]any, []any, []map[string]any:
			return nil, malformed(name, raw, fmt.Sprintf("value for key %q must be a template string, found %T", k, v), nil)
		default:
			entries[k] = fmt.Sprint(tv)
		}
	}

	doc, err := NewDocument(name, entries)
	if err != nil {
		return nil, withOrigin(err, raw)
	}

	return doc, nil
}

// mappingRoot decodes YAML (or JSON, as a YAML subset) and returns the single
// top-level mapping node. Zero documents, several documents or a non-mapping
// top level are all malformed.
func mappingRoot(name string, raw Raw) (*yaml.Node, error) {
	data := raw.Data
	if raw.Format == FormatJSON {
		data = jsonc.ToJSON(data)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*yaml.Node

	for {
		var n yaml.Node

		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, malformed(name, raw, "invalid "+raw.Format.String(), err)
		}

		docs = append(docs, &n)
	}

	if len(docs) != 1 {
		return nil, malformed(name, raw, fmt.Sprintf("expected exactly one top-level mapping, found %d documents", len(docs)), nil)
	}

	root := docs[0]
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) != 1 {
			return nil, malformed(name, raw, "empty document", nil)
		}

		root = deref(root.Content[0])
	}

	if root.Kind != yaml.MappingNode {
		return nil, malformed(name, raw, "top level must be a mapping, found "+kindName(root.Kind), nil)
	}

	return root, nil
}

// decodeTOML decodes raw into v. A TOML text without a single key is the
// counterpart of a YAML stream with no document, and just as malformed.
func decodeTOML(name string, raw Raw, v any, reason string) error {
	md, err := toml.Decode(string(raw.Data), v)
	if err != nil {
		return malformed(name, raw, reason, err)
	}

	if len(md.Keys()) == 0 {
		return malformed(name, raw, "expected exactly one top-level mapping, found an empty TOML document", nil)
	}

	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "nothing"
	}
}

func malformed(name string, raw Raw, reason string, err error) error {
	return errors.WithStack(&MalformedSchemaError{
		Name:   name,
		Origin: raw.Origin,
		Reason: reason,
		Err:    err,
	})
}

func withOrigin(err error, raw Raw) error {
	var m *MalformedSchemaError
	if errors.As(err, &m) && m.Origin == "" {
		m.Origin = raw.Origin
	}

	return err
}
