// Package entity defines the production entities that fill path templates and
// the rules for walking them.
//
// An Entity knows its Kind and its Parent. Expand closes a caller's context
// over parent chains, so supplying a shot also supplies its sequence and
// project. Attr looks up one attribute hop on any value and Render turns the
// final value into path text.
//
// The concrete studio types (Project, Episode, Sequence, Shot, Asset,
// Instance, Task, PublishGroup, Publish) mirror the production database. Record
// is a generic entity for tools and tests; LoadRecords builds Records from a
// YAML context file.
package entity
