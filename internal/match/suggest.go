package match

import (
	"sort"
)

// DefaultMinScore is the similarity below which a name is not suggested.
const DefaultMinScore = 0.6

// DefaultMaxSuggestions caps how many names Suggest returns.
const DefaultMaxSuggestions = 3

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against unknown, best first. Ties are broken
// by name so the order is deterministic.
func Rank(unknown string, known []string) []Candidate {
	target := NormalizeName(unknown)

	out := make([]Candidate, 0, len(known))
	for _, name := range known {
		out = append(out, Candidate{
			Name:  name,
			Score: Similarity(target, NormalizeName(name)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// Suggest returns up to DefaultMaxSuggestions known names whose similarity
// to unknown reaches DefaultMinScore.
func Suggest(unknown string, known []string) []string {
	var out []string

	for _, c := range Rank(unknown, known) {
		if c.Score < DefaultMinScore || len(out) == DefaultMaxSuggestions {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
