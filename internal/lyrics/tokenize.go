package lyrics

import (
	"regexp"
	"strings"

	"lyricsync/internal/textutil"
)

var fragmentPattern = regexp.MustCompile(`[` + wordClass + `']+|[^` + wordClass + `\s]|\s+`)

// Tokenize splits text into typed tokens. Blank lines vanish, a section
// header line becomes a single token, and every other line contributes its
// fragments followed by one line-break token. Typographic apostrophes are
// folded to ASCII first.
func Tokenize(text string) []Token {
	text = textutil.FoldApostrophes(text)

	var tokens []Token
	emit := func(literal string) {
		tokens = append(tokens, Token{Text: literal, Kind: Classify(literal), Position: len(tokens)})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if sectionHeaderPattern.MatchString(line) {
			emit(line)
			continue
		}
		for _, fragment := range fragmentPattern.FindAllString(line, -1) {
			if strings.TrimSpace(fragment) == "" {
				continue
			}
			emit(fragment)
		}
		emit(LineBreakText)
	}
	return tokens
}

// Literals returns the token texts in order.
func Literals(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}
