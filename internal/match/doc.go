// Package match provides name normalization, Levenshtein distance and
// suggestion ranking used to turn "unknown key" and "unknown entity" failures
// into actionable "did you mean" hints.
//
// Key functions:
//   - NormalizeName: folds schema key / entity names for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against an unknown one
package match
