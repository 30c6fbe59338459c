package align

import (
	"strings"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/textutil"
)

const (
	defaultLineBreakCost          = 100
	defaultWordMismatchCost       = 10
	defaultApostropheMismatchCost = 5
)

// CostModel holds the penalties used to score moves.
type CostModel struct {
	// LineBreak is charged for skipping or mismatching a line break.
	LineBreak int
	// WordMismatch is charged for skipping a token or pairing unrelated words.
	WordMismatch int
	// ApostropheMismatch is charged for pairing a word with its
	// apostrophe-bearing spelling.
	ApostropheMismatch int
}

// DefaultCostModel returns the standard penalties.
func DefaultCostModel() CostModel {
	return CostModel{
		LineBreak:          defaultLineBreakCost,
		WordMismatch:       defaultWordMismatchCost,
		ApostropheMismatch: defaultApostropheMismatchCost,
	}
}

// GapCost is the price of leaving tok unpaired.
func (m CostModel) GapCost(tok lyrics.Token) int {
	switch tok.Kind {
	case lyrics.KindSectionHeader:
		return 0
	case lyrics.KindLineBreak:
		return m.LineBreak
	default:
		return m.WordMismatch
	}
}

// MatchCost is the price of pairing a with b.
func (m CostModel) MatchCost(a, b lyrics.Token) int {
	if a.Kind == lyrics.KindSectionHeader || b.Kind == lyrics.KindSectionHeader {
		return 0
	}
	if textutil.EqualFold(a.Text, b.Text) {
		return 0
	}
	if a.Kind == lyrics.KindLineBreak || b.Kind == lyrics.KindLineBreak {
		return m.LineBreak
	}
	if apostropheVariant(a, b) {
		return m.ApostropheMismatch
	}
	return m.WordMismatch
}

// apostropheVariant reports whether one token is a plain word and the other
// the same word spelled with apostrophes, either by elision (ain't / aint) or
// by a dropped g (gettin' / getting).
func apostropheVariant(a, b lyrics.Token) bool {
	var plain, marked lyrics.Token
	switch {
	case a.Kind == lyrics.KindWord && b.Kind == lyrics.KindWordWithApostrophe:
		plain, marked = a, b
	case a.Kind == lyrics.KindWordWithApostrophe && b.Kind == lyrics.KindWord:
		plain, marked = b, a
	default:
		return false
	}

	word := textutil.Fold(plain.Text)
	base := textutil.Fold(marked.Text)
	if textutil.StripApostrophes(base) == word {
		return true
	}
	if stem, ok := strings.CutSuffix(base, "in'"); ok && stem != "" {
		return textutil.StripApostrophes(stem)+"ing" == word
	}
	return false
}
