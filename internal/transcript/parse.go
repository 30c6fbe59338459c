package transcript

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// Block is one numbered transcript cue.
type Block struct {
	Number    int       `json:"number"`
	Timestamp Timestamp `json:"timestamp"`
	Lines     []string  `json:"lines"`
}

// Text joins the block lines with single spaces.
func (b Block) Text() string {
	return strings.Join(b.Lines, " ")
}

// SkippedBlock records a block dropped because its timing line was unreadable.
type SkippedBlock struct {
	Number int    `json:"number"`
	Raw    string `json:"raw"`
	Err    error  `json:"-"`
}

// Transcript is the parsed form of an SRT file keyed by block number.
type Transcript struct {
	Timestamps map[int]Timestamp `json:"timestamps"`
	Texts      map[int]string    `json:"texts"`
	Skipped    []SkippedBlock    `json:"skipped,omitempty"`
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{
		Timestamps: make(map[int]Timestamp),
		Texts:      make(map[int]string),
	}
}

// Empty reports whether no block carries a timestamp.
func (t *Transcript) Empty() bool {
	return t == nil || len(t.Timestamps) == 0
}

// Numbers returns the block numbers that carry a timestamp, ascending.
func (t *Transcript) Numbers() []int {
	if t == nil {
		return nil
	}
	numbers := make([]int, 0, len(t.Timestamps))
	for n := range t.Timestamps {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return numbers
}

// Bounds returns the lowest and highest block numbers seen with either a
// timestamp or text. ok is false for an empty transcript.
func (t *Transcript) Bounds() (lowest, highest int, ok bool) {
	if t == nil {
		return 0, 0, false
	}
	visit := func(n int) {
		if !ok {
			lowest, highest, ok = n, n, true
			return
		}
		lowest = min(lowest, n)
		highest = max(highest, n)
	}
	for n := range t.Timestamps {
		visit(n)
	}
	for n := range t.Texts {
		visit(n)
	}
	return lowest, highest, ok
}

// MaxTimestamped returns the highest block number carrying a timestamp.
func (t *Transcript) MaxTimestamped() (int, bool) {
	numbers := t.Numbers()
	if len(numbers) == 0 {
		return 0, false
	}
	return numbers[len(numbers)-1], true
}

// Blocks returns the timestamped blocks in ascending number order.
func (t *Transcript) Blocks() []Block {
	numbers := t.Numbers()
	blocks := make([]Block, 0, len(numbers))
	for _, n := range numbers {
		block := Block{Number: n, Timestamp: t.Timestamps[n]}
		if text, ok := t.Texts[n]; ok {
			block.Lines = []string{text}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Parse reads SRT content. Only read errors are returned; malformed timing
// lines drop their block and are listed in Skipped.
func Parse(r io.Reader) (*Transcript, error) {
	t := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		current  int
		text     string
		inBlock  bool
		dropped  bool
		firstRow = true
	)
	for scanner.Scan() {
		line := scanner.Text()
		if firstRow {
			line = strings.TrimPrefix(line, "\ufeff")
			firstRow = false
		}
		line = strings.TrimSpace(line)

		if n, ok := blockNumber(line); ok {
			current, text, inBlock, dropped = n, "", true, false
			continue
		}
		if !inBlock || dropped || line == "" {
			continue
		}
		if IsTimingLine(line) {
			ts, err := ParseTimestamp(line)
			if err != nil {
				t.Skipped = append(t.Skipped, SkippedBlock{Number: current, Raw: line, Err: err})
				delete(t.Timestamps, current)
				delete(t.Texts, current)
				dropped = true
				continue
			}
			t.Timestamps[current] = ts
			continue
		}
		if text == "" {
			text = line
		} else {
			text += " " + line
		}
		t.Texts[current] = text
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return t, nil
}

// ParseString parses SRT content held in memory.
func ParseString(content string) (*Transcript, error) {
	return Parse(strings.NewReader(content))
}

func blockNumber(line string) (int, bool) {
	if line == "" {
		return 0, false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return n, true
}
