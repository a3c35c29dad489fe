// Package diagnostic provides structured errors, warnings and infos produced
// while linting path schemas.
//
// Key capabilities:
//   - Unknown $key references with "did you mean" suggestions
//   - Key reference cycles
//   - Malformed <entity.attr> placeholders
//   - Empty or unreferenced templates
package diagnostic
