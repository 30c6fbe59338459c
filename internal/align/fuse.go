package align

import (
	"strings"

	"lyricsync/internal/lyrics"
)

// Fuse rebuilds lines from the second sequence of an alignment. Section
// headers are dropped, a line break on either side ends the current line,
// and tokens are joined with single spaces except around punctuation. A
// content token paired against a line break is consumed with it.
func Fuse(pairs []Pair) []string {
	var (
		lines   []string
		current []lyrics.Token
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		lines = append(lines, joinLine(current))
		current = current[:0]
	}

	for _, p := range pairs {
		if isKind(p.A, lyrics.KindSectionHeader) || isKind(p.B, lyrics.KindSectionHeader) {
			continue
		}
		if isKind(p.A, lyrics.KindLineBreak) || isKind(p.B, lyrics.KindLineBreak) {
			flush()
			continue
		}
		if p.B != nil && !p.B.Structural() {
			current = append(current, *p.B)
		}
	}
	flush()
	return lines
}

// FuseText joins the fused lines with newlines.
func FuseText(pairs []Pair) string {
	return strings.Join(Fuse(pairs), "\n")
}

func joinLine(tokens []lyrics.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && tok.Kind != lyrics.KindPunct && tokens[i-1].Kind != lyrics.KindPunct {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func isKind(tok *lyrics.Token, kind lyrics.Kind) bool {
	return tok != nil && tok.Kind == kind
}
