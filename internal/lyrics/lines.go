package lyrics

import "strings"

// ReferenceLines extracts the lyric lines that receive timestamps: trimmed,
// in order, without blank lines or section headers.
func ReferenceLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsSectionHeader(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
