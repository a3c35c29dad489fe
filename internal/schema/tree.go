package schema

import (
	"fmt"
	"strconv"
	"strings"

	"pathschema/internal/errors"
)

// TreeSourceName is the source name a folder tree is stored under:
// "folders_<name>", following the studio file convention.
func TreeSourceName(name string) string {
	return "folders_" + name
}

// Tree is a legacy folder-creation schema: nested named nodes carrying the
// permissions to create each folder with.
type Tree struct {
	Name string
	Root FolderNode
}

// FolderNode is one node of a folder Tree. A node without a name produces
// no folder, and neither does anything beneath it.
type FolderNode struct {
	Name     string       `yaml:"name" toml:"name"`
	Umask    string       `yaml:"umask,omitempty" toml:"umask"`
	Pgrp     string       `yaml:"pgrp,omitempty" toml:"pgrp"`
	Children []FolderNode `yaml:"children,omitempty" toml:"children"`
}

// UmaskBits parses Umask as octal. ok is false when no umask is set.
func (n *FolderNode) UmaskBits() (bits uint32, ok bool) {
	if n.Umask == "" {
		return 0, false
	}

	v, err := strconv.ParseUint(n.Umask, 8, 32)
	if err != nil {
		return 0, false
	}

	return uint32(v), true
}

// Count returns the number of folders the subtree produces.
func (n *FolderNode) Count() int {
	if n.Name == "" {
		return 0
	}

	c := 1
	for i := range n.Children {
		c += n.Children[i].Count()
	}

	return c
}

func (n *FolderNode) validate(at string) error {
	here := at + "/" + n.Name

	if n.Name != "" && strings.Trim(n.Name, "/") == "" {
		return errors.Newf("node %q: name is only separators", here)
	}

	if n.Umask != "" {
		if _, err := strconv.ParseUint(n.Umask, 8, 32); err != nil {
			return errors.Newf("node %q: umask %q is not octal", here, n.Umask)
		}
	}

	for i := range n.Children {
		if err := n.Children[i].validate(fmt.Sprintf("%s[%d]", here, i)); err != nil {
			return err
		}
	}

	return nil
}
