// Package resolve turns schema keys into concrete paths.
//
// A Resolver combines a schema.Store with entity.Expand:
//
//  1. Flatten the key's template (cached by the store).
//  2. Collect the entity names its placeholders need.
//  3. Close the caller's context over entity parents.
//  4. Fail with every missing name at once, or
//  5. substitute each placeholder, hop by hop, in one left-to-right pass.
//
// Substitution is all or nothing: a nil value or a missing attribute is an
// error, never an empty string. Folders walks a legacy folder tree with the
// same rules.
package resolve
