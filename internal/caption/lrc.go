package caption

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/reconcile"
	"lyricsync/internal/transcript"
)

// ErrNotSRT is returned by SRTToLRC when no timing line appears near the top
// of the input.
var ErrNotSRT = errors.New("input does not look like srt")

// sniffLines is how many leading lines SRTToLRC inspects for a timing line.
const sniffLines = 10

// LRCLine is one timed lyric line.
type LRCLine struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// LRCDocument is the JSON shape served to lyric players.
type LRCDocument struct {
	Lines []LRCLine `json:"lines"`
}

// FormatLRCTime renders d as [mm:ss.xx], rounded to centiseconds. Minutes are
// not wrapped at the hour.
func FormatLRCTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d.Round(10*time.Millisecond) / (10 * time.Millisecond))
	minutes := cs / 6000
	cs %= 6000
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, cs/100, cs%100)
}

// FromEntries converts reconciled entries using each entry's start time.
func FromEntries(entries []reconcile.Entry) LRCDocument {
	doc := LRCDocument{Lines: make([]LRCLine, 0, len(entries))}
	for _, e := range entries {
		doc.Lines = append(doc.Lines, LRCLine{
			Timestamp: FormatLRCTime(e.Timestamp.Start),
			Text:      e.Line,
		})
	}
	return doc
}

// WriteLRC writes doc as plain LRC, one "[mm:ss.xx] text" line per entry.
// Multi-line text is folded onto one line.
func WriteLRC(w io.Writer, doc LRCDocument) error {
	bw := bufio.NewWriter(w)
	for _, line := range doc.Lines {
		text := strings.Join(strings.Fields(line.Text), " ")
		if _, err := fmt.Fprintf(bw, "%s %s\n", line.Timestamp, text); err != nil {
			return fmt.Errorf("write lrc: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	return nil
}

// WriteLRCJSON writes doc as indented JSON.
func WriteLRCJSON(w io.Writer, doc LRCDocument) error {
	if doc.Lines == nil {
		doc.Lines = []LRCLine{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write lrc json: %w", err)
	}
	return nil
}

// SRTToLRC converts an SRT stream to LRC lines. Blocks are separated by blank
// lines; a block without a timing line or without usable text is skipped.
// Block numbers and section headers are dropped, single quotes are trimmed
// from line ends, and the remaining lines are joined with newlines. Empty
// input yields an empty document.
func SRTToLRC(r io.Reader) (LRCDocument, error) {
	doc := LRCDocument{Lines: []LRCLine{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var (
		block   []string
		read    int
		sniffed bool
	)
	flush := func() {
		if line, ok := lrcFromBlock(block); ok {
			doc.Lines = append(doc.Lines, line)
		}
		block = block[:0]
	}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if read == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		read++
		if read <= sniffLines && transcript.IsTimingLine(line) {
			sniffed = true
		}
		if read == sniffLines && !sniffed {
			return LRCDocument{}, ErrNotSRT
		}
		if strings.TrimSpace(line) == "" {
			if len(block) > 0 {
				flush()
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return LRCDocument{}, fmt.Errorf("read srt: %w", err)
	}
	if read == 0 {
		return doc, nil
	}
	if !sniffed {
		return LRCDocument{}, ErrNotSRT
	}
	if len(block) > 0 {
		flush()
	}
	return doc, nil
}

func lrcFromBlock(block []string) (LRCLine, bool) {
	timing := -1
	for i, line := range block {
		if transcript.IsTimingLine(line) {
			timing = i
			break
		}
	}
	if timing < 0 {
		return LRCLine{}, false
	}

	var text []string
	for _, line := range block[timing+1:] {
		line = strings.TrimSpace(line)
		if line == "" || isDigits(line) || transcript.IsTimingLine(line) || lyrics.IsSectionHeader(line) {
			continue
		}
		if line = strings.Trim(line, "'"); line != "" {
			text = append(text, line)
		}
	}
	if len(text) == 0 {
		return LRCLine{}, false
	}

	start, _, _ := strings.Cut(block[timing], "-->")
	d, err := transcript.ParseSRTTime(strings.TrimSpace(start))
	if err != nil {
		return LRCLine{}, false
	}
	return LRCLine{Timestamp: FormatLRCTime(d), Text: strings.Join(text, "\n")}, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
