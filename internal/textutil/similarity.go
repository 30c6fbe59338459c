package textutil

import "strings"

// CharJaccard returns the Jaccard similarity of the distinct runes of a and b
// after trimming and case folding. Empty input on either side scores 0.
func CharJaccard(a, b string) float64 {
	a = Fold(strings.TrimSpace(a))
	b = Fold(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	setA := runeSet(a)
	setB := runeSet(b)

	shared := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// ContainsFold reports whether either string contains the other once both are
// trimmed and case folded. Empty strings never match.
func ContainsFold(a, b string) bool {
	a = Fold(strings.TrimSpace(a))
	b = Fold(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// LineSimilarity scores two lines with CharJaccard, except that a line
// contained in the other scores substringScore instead.
func LineSimilarity(a, b string, substringScore float64) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	if ContainsFold(a, b) {
		return substringScore
	}
	return CharJaccard(a, b)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
