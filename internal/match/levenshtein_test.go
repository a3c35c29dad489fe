package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"shot", "shot", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Runes, not bytes
		{"séquence", "sequence", 1},

		// Schema keys
		{"shot_rot", "shot_root", 1},
		{"asset_root", "shot_root", 4},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := Levenshtein(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity of empty strings = %v, want 1", got)
	}

	if got := Similarity("abcd", "abcd"); got != 1.0 {
		t.Errorf("Similarity of identical strings = %v, want 1", got)
	}

	if got := Similarity("abcd", "wxyz"); got != 0.0 {
		t.Errorf("Similarity of disjoint strings = %v, want 0", got)
	}

	if got := Similarity("abcd", "abce"); got != 0.75 {
		t.Errorf("Similarity(abcd, abce) = %v, want 0.75", got)
	}
}
