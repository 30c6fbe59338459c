package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostropheVariants are typographic marks transcribers and lyric sites use
// in place of the ASCII apostrophe.
var apostropheVariants = map[rune]struct{}{
	'‘': {}, // left single quotation mark
	'’': {}, // right single quotation mark
	'ʼ': {}, // modifier letter apostrophe
	'′': {}, // prime
	'`': {}, // grave accent
}

func foldApostrophe(r rune) rune {
	if _, ok := apostropheVariants[r]; ok {
		return '\''
	}
	return r
}

// FoldApostrophes normalizes text to NFC and rewrites typographic apostrophes
// to the ASCII apostrophe. Text that fails to transform is returned unchanged.
func FoldApostrophes(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFC, runes.Map(foldApostrophe))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Fold returns the case-folded form of text for case-insensitive comparison.
func Fold(text string) string {
	if text == "" {
		return ""
	}
	// Casers are stateful; build one per call.
	return cases.Fold().String(text)
}

// EqualFold reports whether a and b are equal under full Unicode case folding.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

// StripApostrophes removes every ASCII apostrophe from text.
func StripApostrophes(text string) string {
	return strings.ReplaceAll(text, "'", "")
}
