package resolve

import (
	"io/fs"
	"iter"

	"pathschema/internal/common"
	"pathschema/internal/entity"
	"pathschema/internal/errors"
	"pathschema/internal/schema"
)

// FolderType is the only record type folder trees produce.
const FolderType = "folder"

// Folder is one resolved node of a folder tree.
type Folder struct {
	Path string
	// Umask is the node's octal umask as written, empty when unset.
	Umask string
	// Mode is 0777 with the umask bits cleared, zero when no umask is set.
	Mode fs.FileMode
	Pgrp string
	Type string
}

// Folders returns the resolved folders of the named tree in depth-first
// pre-order. Nothing is computed until the sequence is ranged over, and each
// range starts a fresh walk. The first error ends the sequence.
//
// Node names may hold placeholders; they resolve with the same rules as
// Resolve. A node without a name is skipped together with its children.
func (r *Resolver) Folders(treeName string, ctx entity.Context) iter.Seq2[Folder, error] {
	return func(yield func(Folder, error) bool) {
		tree, err := r.store.ReadTree(treeName)
		if err != nil {
			yield(Folder{}, err)
			return
		}

		expanded, err := r.expand(ctx)
		if err != nil {
			yield(Folder{}, err)
			return
		}

		w := &folderWalker{tree: tree, ctx: expanded, yield: yield}
		w.walk(&tree.Root, "")
	}
}

type folderWalker struct {
	tree  *schema.Tree
	ctx   entity.Context
	yield func(Folder, error) bool
}

// walk visits n and its children. It returns false once the consumer stops
// or an error was yielded.
func (w *folderWalker) walk(n *schema.FolderNode, prefix string) bool {
	if n.Name == "" {
		return true
	}

	raw := n.Name
	if prefix != "" {
		raw = prefix + "/" + n.Name
	}

	p, err := w.resolve(raw)
	if err != nil {
		w.yield(Folder{}, err)
		return false
	}

	f := Folder{Path: p, Umask: n.Umask, Pgrp: n.Pgrp, Type: FolderType}
	if bits, ok := n.UmaskBits(); ok {
		f.Mode = fs.FileMode(0o777 &^ bits)
	}

	if !w.yield(f, nil) {
		return false
	}

	for i := range n.Children {
		if !w.walk(&n.Children[i], raw) {
			return false
		}
	}

	return true
}

func (w *folderWalker) resolve(raw string) (string, error) {
	phs := schema.Placeholders(raw)

	if missing := common.Subtract(schema.RequiredFields(raw), map[string]any(w.ctx)); len(missing) > 0 {
		return "", missingFields(raw, schema.TreeSourceName(w.tree.Name), missing)
	}

	out, err := substitute(raw, phs, w.ctx)
	if err != nil {
		return "", errors.Wrapf(err, "resolving folder %q in tree %q", raw, w.tree.Name)
	}

	return out, nil
}
