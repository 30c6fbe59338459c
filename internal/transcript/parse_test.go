package transcript_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lyricsync/internal/transcript"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Yeah, yeah

2
00:00:04,000 --> 00:00:06,000
Dust off the shoulders
heavyweight soldier

3
00:00:06,500 --> 00:00:08,250
Heart like boulders
`

func TestParseCollectsTimestampsAndTexts(t *testing.T) {
	tr, err := transcript.ParseString(sampleSRT)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tr.Timestamps) != 3 || len(tr.Texts) != 3 {
		t.Fatalf("got %d timestamps and %d texts", len(tr.Timestamps), len(tr.Texts))
	}
	if got := tr.Texts[2]; got != "Dust off the shoulders heavyweight soldier" {
		t.Fatalf("block 2 text = %q", got)
	}
	ts := tr.Timestamps[3]
	if ts.Start != 6500*time.Millisecond || ts.End != 8250*time.Millisecond {
		t.Fatalf("block 3 timing = %v..%v", ts.Start, ts.End)
	}
	if ts.Raw != "00:00:06,500 --> 00:00:08,250" {
		t.Fatalf("block 3 raw = %q", ts.Raw)
	}
	if len(tr.Skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %+v", tr.Skipped)
	}
}

func TestParseDropsMalformedTimestamp(t *testing.T) {
	content := "1\nnot a time --> 00:00:02,000\nlost line\n\n2\n00:00:02,000 --> 00:00:03,000\nkept line\n"
	tr, err := transcript.ParseString(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := tr.Timestamps[1]; ok {
		t.Fatal("block 1 should be dropped")
	}
	if _, ok := tr.Texts[1]; ok {
		t.Fatal("block 1 text should be dropped")
	}
	if tr.Texts[2] != "kept line" {
		t.Fatalf("block 2 text = %q", tr.Texts[2])
	}
	if len(tr.Skipped) != 1 || tr.Skipped[0].Number != 1 {
		t.Fatalf("skipped = %+v", tr.Skipped)
	}
	if !errors.Is(tr.Skipped[0].Err, transcript.ErrMalformedTimestamp) {
		t.Fatalf("skipped error = %v", tr.Skipped[0].Err)
	}
}

func TestParseToleratesCRLFAndBOM(t *testing.T) {
	content := "\ufeff1\r\n00:00:01.000 --> 00:00:02.000\r\nhello there\r\n"
	tr, err := transcript.ParseString(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tr.Texts[1] != "hello there" {
		t.Fatalf("text = %q", tr.Texts[1])
	}
	if tr.Timestamps[1].End != 2*time.Second {
		t.Fatalf("end = %v", tr.Timestamps[1].End)
	}
}

func TestParseIgnoresTextBeforeFirstBlock(t *testing.T) {
	tr, err := transcript.ParseString("WEBVTT-ish header\n\n5\n00:00:01,000 --> 00:00:02,000\nline\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tr.Texts) != 1 || tr.Texts[5] != "line" {
		t.Fatalf("texts = %v", tr.Texts)
	}
	low, high, ok := tr.Bounds()
	if !ok || low != 5 || high != 5 {
		t.Fatalf("bounds = %d..%d (%v)", low, high, ok)
	}
}

func TestParseEmpty(t *testing.T) {
	tr, err := transcript.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !tr.Empty() {
		t.Fatal("expected empty transcript")
	}
	if _, _, ok := tr.Bounds(); ok {
		t.Fatal("empty transcript has no bounds")
	}
	if _, ok := tr.MaxTimestamped(); ok {
		t.Fatal("empty transcript has no max block")
	}
}

func TestBlocksAreOrdered(t *testing.T) {
	content := "3\n00:00:05,000 --> 00:00:06,000\nthird\n\n1\n00:00:01,000 --> 00:00:02,000\nfirst\n"
	tr, err := transcript.ParseString(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	blocks := tr.Blocks()
	if len(blocks) != 2 || blocks[0].Number != 1 || blocks[1].Number != 3 {
		t.Fatalf("blocks = %+v", blocks)
	}
	if blocks[1].Text() != "third" {
		t.Fatalf("block text = %q", blocks[1].Text())
	}
	if n, ok := tr.MaxTimestamped(); !ok || n != 3 {
		t.Fatalf("max = %d (%v)", n, ok)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestParseReturnsReadErrors(t *testing.T) {
	if _, err := transcript.Parse(failingReader{}); err == nil {
		t.Fatal("expected read error")
	}
}
