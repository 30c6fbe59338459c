package lyrics

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	KindUnknown Kind = iota
	KindWord
	KindPunct
	KindTag
	KindLineBreak
	KindSectionHeader
	KindWordWithApostrophe
)

// LineBreakText is the literal carried by every line-break token.
const LineBreakText = "\n"

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindWord:               "word",
	KindPunct:              "punct",
	KindTag:                "tag",
	KindLineBreak:          "line_break",
	KindSectionHeader:      "section_header",
	KindWordWithApostrophe: "word_with_apostrophe",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders the kind name for JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", text)
}

// Token is an immutable unit of text produced by Tokenize.
type Token struct {
	Text     string `json:"text"`
	Kind     Kind   `json:"kind"`
	Position int    `json:"position"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Structural reports whether the token carries layout rather than content.
func (t Token) Structural() bool {
	return t.Kind == KindLineBreak || t.Kind == KindSectionHeader
}

// Word characters follow Unicode letters, marks, digits and underscore so that
// accented lyrics tokenize the same way plain ASCII does.
const wordClass = `\p{L}\p{M}\p{N}_`

var (
	sectionHeaderPattern  = regexp.MustCompile(`^\[.*\]$`)
	apostropheWordPattern = regexp.MustCompile(`^[` + wordClass + `']+$`)
	tagPattern            = regexp.MustCompile(`^<[^<>]*>$`)
	wordPattern           = regexp.MustCompile(`^[` + wordClass + `]+$`)
	punctPattern          = regexp.MustCompile(`^[^` + wordClass + `]$`)
)

type kindRule struct {
	kind  Kind
	match func(text string) bool
}

// kindRules is evaluated in order; the first match wins.
var kindRules = []kindRule{
	{KindSectionHeader, sectionHeaderPattern.MatchString},
	{KindLineBreak, func(text string) bool { return text == LineBreakText }},
	{KindWordWithApostrophe, func(text string) bool {
		return strings.Contains(text, "'") && apostropheWordPattern.MatchString(text)
	}},
	{KindTag, tagPattern.MatchString},
	{KindWord, wordPattern.MatchString},
	{KindPunct, punctPattern.MatchString},
}

// Classify returns the kind of a literal token text.
func Classify(text string) Kind {
	for _, rule := range kindRules {
		if rule.match(text) {
			return rule.kind
		}
	}
	return KindUnknown
}

// IsSectionHeader reports whether a trimmed line is a bracketed section
// marker such as "[Verse 2]".
func IsSectionHeader(line string) bool {
	return sectionHeaderPattern.MatchString(strings.TrimSpace(line))
}
