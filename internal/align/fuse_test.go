package align_test

import (
	"testing"

	"lyricsync/internal/align"
	"lyricsync/internal/lyrics"
)

func TestSyncTextReflowsTargetLines(t *testing.T) {
	transcribed := "[Verse]\nDust off the shoulders, heavyweight soldier\nHeart like boulders, world gettin' colder"
	reference := "[Verse]\nDust off the shoulders, heavyweight soldier\nHeart like boulders, world getting colder"

	got, err := align.New().SyncText(transcribed, reference)
	if err != nil {
		t.Fatalf("SyncText: %v", err)
	}
	want := "Dust off the shoulders,heavyweight soldier\nHeart like boulders,world getting colder"
	if got != want {
		t.Fatalf("SyncText() =\n%q\nwant\n%q", got, want)
	}
}

func TestFuseSkipsHeadersAndEmptyLines(t *testing.T) {
	header := token("[Chorus]")
	lineBreak := token("\n")
	pairs := []align.Pair{
		{A: &header, B: &header, Move: align.MoveMatch},
		{B: &lineBreak, Move: align.MoveGapUp},
		{A: ptr(token("keep")), B: ptr(token("Keep")), Move: align.MoveMatch},
		{A: ptr(token("it")), Move: align.MoveGapLeft},
		{B: ptr(token("movin'")), Move: align.MoveGapUp},
		{B: ptr(token(",")), Move: align.MoveGapUp},
		{A: ptr(token("ever")), B: ptr(token("never")), Move: align.MoveMatch},
		{A: &lineBreak, B: &lineBreak, Move: align.MoveMatch},
		{A: ptr(token("tail")), Move: align.MoveGapLeft},
		{B: ptr(token("last")), Move: align.MoveGapUp},
	}

	got := align.Fuse(pairs)
	want := []string{"Keep movin',never", "last"}
	if len(got) != len(want) {
		t.Fatalf("Fuse() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFuseLineBreakAgainstWordConsumesWord(t *testing.T) {
	lineBreak := token("\n")
	pairs := []align.Pair{
		{B: ptr(token("first")), Move: align.MoveGapUp},
		{A: &lineBreak, B: ptr(token("second")), Move: align.MoveMatch},
		{B: ptr(token("third")), Move: align.MoveGapUp},
	}
	got := align.FuseText(pairs)
	if got != "first\nthird" {
		t.Fatalf("FuseText() = %q", got)
	}
}

func TestFuseHeaderPairDropsBothSides(t *testing.T) {
	header := token("[Bridge]")
	pairs := []align.Pair{
		{A: &header, B: ptr(token("Brick")), Move: align.MoveMatch},
		{B: ptr(token("by")), Move: align.MoveGapUp},
	}
	if got := align.FuseText(pairs); got != "by" {
		t.Fatalf("FuseText() = %q", got)
	}
}

func TestFuseEmpty(t *testing.T) {
	if got := align.Fuse(nil); len(got) != 0 {
		t.Fatalf("Fuse(nil) = %q", got)
	}
}

func ptr(tok lyrics.Token) *lyrics.Token {
	return &tok
}
