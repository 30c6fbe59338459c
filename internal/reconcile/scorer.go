package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	"lyricsync/internal/textutil"
)

// Scorer names accepted by ScorerByName.
const (
	ScorerCharset     = "charset"
	ScorerJaroWinkler = "jarowinkler"
	ScorerCosine      = "cosine"
)

// ErrUnknownScorer is returned by ScorerByName for unrecognised names.
var ErrUnknownScorer = errors.New("unknown scorer")

// Scorer rates how closely a transcribed line resembles a reference line.
// Scores fall in [0, 1]; empty input scores 0.
type Scorer interface {
	Score(transcribed, reference string) float64
}

// CharsetScorer compares the distinct characters of both lines.
type CharsetScorer struct {
	SubstringScore float64
}

func (s CharsetScorer) Score(transcribed, reference string) float64 {
	return textutil.LineSimilarity(transcribed, reference, s.SubstringScore)
}

// JaroWinklerScorer rates the folded lines with Jaro-Winkler distance.
type JaroWinklerScorer struct {
	SubstringScore float64
}

func (s JaroWinklerScorer) Score(transcribed, reference string) float64 {
	if score, ok := substringOverride(transcribed, reference, s.SubstringScore); ok {
		return score
	}
	return matchr.JaroWinkler(foldLine(transcribed), foldLine(reference), false)
}

// TokenCosineScorer compares word frequency vectors of both lines.
type TokenCosineScorer struct {
	SubstringScore float64
}

func (s TokenCosineScorer) Score(transcribed, reference string) float64 {
	if score, ok := substringOverride(transcribed, reference, s.SubstringScore); ok {
		return score
	}
	return textutil.CosineSimilarity(textutil.NewFingerprint(transcribed), textutil.NewFingerprint(reference))
}

// ScorerByName resolves a configured scorer name. An empty name selects the
// charset scorer.
func ScorerByName(name string, substringScore float64) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScorerCharset:
		return CharsetScorer{SubstringScore: substringScore}, nil
	case ScorerJaroWinkler:
		return JaroWinklerScorer{SubstringScore: substringScore}, nil
	case ScorerCosine:
		return TokenCosineScorer{SubstringScore: substringScore}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
	}
}

// substringOverride reports the fixed score for lines where one contains the
// other. ok is true when the caller should use score as-is.
func substringOverride(a, b string, substringScore float64) (float64, bool) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, true
	}
	if textutil.ContainsFold(a, b) {
		return substringScore, true
	}
	return 0, false
}

func foldLine(s string) string {
	return textutil.Fold(textutil.FoldApostrophes(strings.TrimSpace(s)))
}
