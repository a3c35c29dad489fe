// Package schema loads path schemas and implements the template language
// they are written in.
//
// A schema is a named, flat table of templates, one per key:
//
//	project_root:  "<project.root>"
//	sequence_root: "$project_root/sequence/<sequence.name>"
//	shot_root:     "$sequence_root/<shot.name>"
//	shot_pub:      "$shot_root/pub"
//
// # Template Syntax
//
// Templates mix literal text with two disjoint kinds of token:
//   - "$key" refers to another key of the same schema. Flatten replaces it,
//     recursively, with that key's template. Cycles are an error.
//   - "<entity>" and "<entity.attr[.attr...]>" refer to a field of an entity
//     supplied at resolve time. The leading name is the entity type and is
//     case-insensitive.
//
// Nothing else is interpreted: there are no conditionals, loops or escapes.
//
// # Sources and Formats
//
// Schema text comes from a Source (a directory, an fs.FS, memory, or a SQL
// table) and may be YAML (".schema", ".yaml", ".yml"), TOML or JSON with
// comments. Whatever the format, it must hold exactly one top-level mapping.
//
// # Folder Trees
//
// The older folder-creation schemas are nested trees of named nodes with
// umask/pgrp permissions. They are loaded separately with Store.ReadTree from
// "folders_<name>" and never mixed with flat templates.
package schema
