package reconcile_test

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/reconcile"
	"lyricsync/internal/testsupport"
	"lyricsync/internal/transcript"
)

type cue struct {
	number int
	timing string
	text   string
}

func mustTranscript(t *testing.T, cues ...cue) *transcript.Transcript {
	t.Helper()

	var b strings.Builder
	for _, c := range cues {
		fmt.Fprintf(&b, "%d\n%s\n%s\n\n", c.number, c.timing, c.text)
	}
	parsed, err := transcript.ParseString(b.String())
	if err != nil {
		t.Fatalf("parse transcript: %v", err)
	}
	return parsed
}

type fixedScorer float64

func (s fixedScorer) Score(string, string) float64 { return float64(s) }

func blocks(entries []reconcile.Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Block)
	}
	return out
}

func TestReconcileTwoBlocksDirect(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:04,460 --> 00:00:07,180", "Dust off the shoulders heavyweight soldier"},
		cue{2, "00:00:07,180 --> 00:00:09,580", "Heart like boulders world gettin colder"},
	)
	lines := []string{
		"Dust off the shoulders, heavyweight soldier",
		"Heart like boulders, world getting colder",
	}

	res := reconcile.New().Reconcile(tr, lines)
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", res.Entries)
	}
	for i, e := range res.Entries {
		if e.Index != i+1 || e.Block != i+1 || e.Line != lines[i] || e.Pass != reconcile.PassDirect {
			t.Errorf("entry %d = %+v", i, e)
		}
		if e.Timestamp != tr.Timestamps[e.Block] {
			t.Errorf("entry %d timestamp %v, want %v", i, e.Timestamp, tr.Timestamps[e.Block])
		}
	}
	if res.Entries[0].Timestamp.Start != 4460*time.Millisecond {
		t.Errorf("unexpected first start %v", res.Entries[0].Timestamp.Start)
	}
	if len(res.Dropped) != 0 || res.SkippedLeading != 0 {
		t.Errorf("unexpected dropped=%v skipped=%d", res.Dropped, res.SkippedLeading)
	}
}

func TestReconcileRepeatedChorusUsesFallback(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:04,460 --> 00:00:07,180", "Dust off the shoulders heavyweight soldier"},
		cue{2, "00:00:09,600 --> 00:00:12,000", "Keep it movin never losin"},
		cue{3, "00:00:12,100 --> 00:00:14,300", "keep it movin never losin"},
	)
	lines := []string{
		"Dust off the shoulders, heavyweight soldier",
		"Keep it movin', never losin'",
	}

	res := reconcile.New().Reconcile(tr, lines)
	if got := blocks(res.Entries); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("blocks = %v", got)
	}
	last := res.Entries[2]
	if last.Pass != reconcile.PassFallback || last.Line != lines[1] || last.Index != 3 {
		t.Fatalf("unexpected fallback entry %+v", last)
	}
	if last.Score <= 0.7 {
		t.Fatalf("fallback score %v should exceed threshold", last.Score)
	}
	if last.Timestamp != tr.Timestamps[3] {
		t.Fatalf("fallback timestamp %v, want block 3", last.Timestamp)
	}
	direct, fallback := res.Counts()
	if direct != 2 || fallback != 1 {
		t.Fatalf("counts direct=%d fallback=%d", direct, fallback)
	}
}

func TestReconcileDropsBelowThreshold(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:02,000", "Dust off the shoulders heavyweight soldier"},
		cue{2, "00:00:02,000 --> 00:00:03,000", "zzz qqq"},
	)
	res := reconcile.New().Reconcile(tr, []string{"Dust off the shoulders, heavyweight soldier"})
	if len(res.Entries) != 1 || res.Entries[0].Block != 1 {
		t.Fatalf("unexpected entries %+v", res.Entries)
	}
	if !slices.Equal(res.Dropped, []int{2}) {
		t.Fatalf("dropped = %v", res.Dropped)
	}
}

func TestReconcileThresholdIsStrict(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:02,000", "one"},
		cue{2, "00:00:02,000 --> 00:00:03,000", "two"},
	)
	res := reconcile.New(reconcile.WithScorer(fixedScorer(0.7))).Reconcile(tr, []string{"only"})
	if len(res.Entries) != 1 || !slices.Equal(res.Dropped, []int{2}) {
		t.Fatalf("score equal to threshold must not match: %+v", res)
	}

	res = reconcile.New(reconcile.WithScorer(fixedScorer(0.7)), reconcile.WithThreshold(0.5)).Reconcile(tr, []string{"only"})
	if len(res.Entries) != 2 || res.Entries[1].Line != "only" {
		t.Fatalf("expected fallback match with lowered threshold: %+v", res)
	}
}

func TestReconcileFallbackTiePrefersFirstLine(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:02,000", "one"},
		cue{2, "00:00:02,000 --> 00:00:03,000", "two"},
		cue{3, "00:00:03,000 --> 00:00:04,000", "three"},
	)
	res := reconcile.New(reconcile.WithScorer(fixedScorer(0.8))).Reconcile(tr, []string{"first", "second"})
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", res.Entries)
	}
	if res.Entries[2].Block != 3 || res.Entries[2].Line != "first" {
		t.Fatalf("tie should pick first line, got %+v", res.Entries[2])
	}
}

func TestReconcileSkipsLeadingFiller(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:03,900", "Yeah, yeah, uh"},
		cue{2, "00:00:04,460 --> 00:00:07,180", "Dust off the shoulders heavyweight soldier"},
	)
	res := reconcile.New().Reconcile(tr, []string{"Dust off the shoulders, heavyweight soldier"})
	if res.SkippedLeading != 1 {
		t.Fatalf("expected block 1 skipped, got %d", res.SkippedLeading)
	}
	if got := blocks(res.Entries); !slices.Equal(got, []int{2}) {
		t.Fatalf("blocks = %v", got)
	}
	if len(res.Dropped) != 0 {
		t.Fatalf("skipped block must not be scored: %v", res.Dropped)
	}

	res = reconcile.New(reconcile.WithFillerMarker("")).Reconcile(tr, []string{"Dust off the shoulders, heavyweight soldier"})
	if res.SkippedLeading != 0 || res.Entries[0].Block != 1 {
		t.Fatalf("empty marker should disable skip: %+v", res)
	}
}

func TestReconcileOnlyLeadingBlockIsCheckedForFiller(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:02,000", "Dust off the shoulders heavyweight soldier"},
		cue{2, "00:00:02,000 --> 00:00:03,000", "yeah heart like boulders"},
	)
	res := reconcile.New().Reconcile(tr, []string{"a", "b"})
	if res.SkippedLeading != 0 || !slices.Equal(blocks(res.Entries), []int{1, 2}) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestReconcileGapInBlockNumbers(t *testing.T) {
	tr := mustTranscript(t,
		cue{2, "00:00:01,000 --> 00:00:02,000", "first line"},
		cue{5, "00:00:05,000 --> 00:00:06,000", "second line"},
	)
	res := reconcile.New().Reconcile(tr, []string{"First line", "Second line"})
	if got := blocks(res.Entries); !slices.Equal(got, []int{2, 5}) {
		t.Fatalf("blocks = %v", got)
	}
	if res.Entries[0].Pass != reconcile.PassDirect {
		t.Fatalf("block 2 should match directly: %+v", res.Entries[0])
	}
	if res.Entries[1].Line != "Second line" || res.Entries[1].Pass != reconcile.PassFallback {
		t.Fatalf("block 5 lies past the direct window: %+v", res.Entries[1])
	}
}

func TestReconcileMissingBlockUsesUpItsSlot(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:02,000", "first line"},
		cue{3, "00:00:03,000 --> 00:00:04,000", "zzz qqq"},
	)
	res := reconcile.New().Reconcile(tr, []string{"First line", "Second line"})
	if got := blocks(res.Entries); !slices.Equal(got, []int{1}) {
		t.Fatalf("blocks = %v", got)
	}
	if !slices.Equal(res.Dropped, []int{3}) {
		t.Fatalf("dropped = %v", res.Dropped)
	}
}

func TestReconcileSparseBlockNumbers(t *testing.T) {
	tr := mustTranscript(t,
		cue{1, "00:00:01,000 --> 00:00:02,000", "hello there"},
		cue{300000000, "00:00:03,000 --> 00:00:04,000", "hello there"},
		cue{math.MaxInt, "00:00:05,000 --> 00:00:06,000", "zzz qqq"},
	)

	done := make(chan reconcile.Result, 1)
	go func() {
		done <- reconcile.New().Reconcile(tr, []string{"hello there"})
	}()
	var res reconcile.Result
	select {
	case res = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Reconcile did not return for sparse block numbers")
	}

	if got := blocks(res.Entries); !slices.Equal(got, []int{1, 300000000}) {
		t.Fatalf("blocks = %v", got)
	}
	if res.Entries[1].Pass != reconcile.PassFallback {
		t.Fatalf("distant block should come from the fallback: %+v", res.Entries[1])
	}
	if !slices.Equal(res.Dropped, []int{math.MaxInt}) {
		t.Fatalf("dropped = %v", res.Dropped)
	}
}

func TestReconcileSkippedLeadingAtMaxBlock(t *testing.T) {
	tr := mustTranscript(t, cue{math.MaxInt, "00:00:01,000 --> 00:00:02,000", "yeah yeah"})
	res := reconcile.New().Reconcile(tr, []string{"line"})
	if res.SkippedLeading != math.MaxInt || len(res.Entries) != 0 || len(res.Dropped) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	tr := mustTranscript(t, cue{1, "00:00:01,000 --> 00:00:02,000", "line"})
	r := reconcile.New()

	if res := r.Reconcile(tr, nil); len(res.Entries) != 0 || len(res.Dropped) != 0 {
		t.Fatalf("expected empty result for no lines, got %+v", res)
	}
	if res := r.Reconcile(transcript.New(), []string{"line"}); len(res.Entries) != 0 {
		t.Fatalf("expected empty result for empty transcript, got %+v", res)
	}
	if res := r.Reconcile(nil, []string{"line"}); len(res.Entries) != 0 {
		t.Fatalf("expected empty result for nil transcript, got %+v", res)
	}
}

func TestReconcileAssignsEachBlockOnce(t *testing.T) {
	tr, err := transcript.ParseString(testsupport.Transcript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lines := lyrics.ReferenceLines(testsupport.Lyrics)

	res := reconcile.New().Reconcile(tr, lines)
	if res.SkippedLeading != 1 {
		t.Fatalf("expected leading ad-lib skipped, got %d", res.SkippedLeading)
	}
	if got := blocks(res.Entries); !slices.Equal(got, []int{2, 3, 4, 5}) {
		t.Fatalf("blocks = %v", got)
	}
	seen := map[int]bool{}
	for i, e := range res.Entries {
		if seen[e.Block] {
			t.Fatalf("block %d assigned twice", e.Block)
		}
		seen[e.Block] = true
		if e.Index != i+1 {
			t.Fatalf("index %d at position %d", e.Index, i)
		}
	}
	if res.Entries[3].Line != lines[2] || res.Entries[3].Pass != reconcile.PassFallback {
		t.Fatalf("chorus repeat should reuse line 3: %+v", res.Entries[3])
	}
}

func TestPassText(t *testing.T) {
	text, err := reconcile.PassFallback.MarshalText()
	if err != nil || string(text) != "fallback" {
		t.Fatalf("MarshalText = %q, %v", text, err)
	}
	if reconcile.PassDirect.String() != "direct" {
		t.Fatalf("unexpected direct name %q", reconcile.PassDirect.String())
	}
}
