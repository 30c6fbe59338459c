package textutil

import (
	"math"
	"strings"
	"unicode"
)

const minTokenLength = 2

// Fingerprint is a bag-of-words vector used for cosine line similarity.
type Fingerprint struct {
	counts map[string]int
	norm   float64
}

// NewFingerprint builds a fingerprint from text. It returns nil when text
// yields no terms.
func NewFingerprint(text string) *Fingerprint {
	terms := Tokenize(text)
	if len(terms) == 0 {
		return nil
	}
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	sumSquares := 0
	for _, n := range counts {
		sumSquares += n * n
	}
	return &Fingerprint{counts: counts, norm: math.Sqrt(float64(sumSquares))}
}

// Tokenize splits text into case-folded terms on anything that is not a
// letter or digit. Apostrophes are removed first so "movin'" and "movin"
// share a term; single-rune terms are dropped.
func Tokenize(text string) []string {
	folded := StripApostrophes(Fold(FoldApostrophes(text)))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	terms := fields[:0]
	for _, field := range fields {
		if len([]rune(field)) >= minTokenLength {
			terms = append(terms, field)
		}
	}
	return terms
}

// TokenCount returns the number of distinct terms.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.counts)
}

// Cosine returns the cosine similarity of f and g, or 0 when either is nil.
// Counts are integers, so the result is exactly symmetric.
func (f *Fingerprint) Cosine(g *Fingerprint) float64 {
	if f == nil || g == nil || f.norm == 0 || g.norm == 0 {
		return 0
	}
	small, large := f.counts, g.counts
	if len(small) > len(large) {
		small, large = large, small
	}
	dot := 0
	for term, n := range small {
		dot += n * large[term]
	}
	if dot == 0 {
		return 0
	}
	return float64(dot) / (f.norm * g.norm)
}

// CosineSimilarity is a.Cosine(b).
func CosineSimilarity(a, b *Fingerprint) float64 {
	return a.Cosine(b)
}
