package syncjob_test

import (
	"context"
	"errors"
	"testing"

	"lyricsync/internal/align"
	"lyricsync/internal/testsupport"
)

func TestEngineSyncText(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	engine, _ := newEngine(t, cfg)

	got, err := engine.SyncText(context.Background(),
		"Dust off the shoulders heavyweight soldier\nHeart like boulders world gettin colder",
		"Dust off the shoulders, heavyweight soldier, heart like boulders, world getting colder",
	)
	if err != nil {
		t.Fatalf("SyncText: %v", err)
	}
	lines := 1
	for _, r := range got {
		if r == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Fatalf("expected two fused lines, got %q", got)
	}
}

func TestEngineAlignOversized(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory(), testsupport.WithMaxCells(10))
	engine, _ := newEngine(t, cfg)

	_, err := engine.Align(context.Background(), "one two three four", "one two three four")
	if !errors.Is(err, align.ErrOversizedAlignment) {
		t.Fatalf("expected ErrOversizedAlignment, got %v", err)
	}
	if engine.Aligner().MaxCells() != 10 {
		t.Fatalf("max cells = %d", engine.Aligner().MaxCells())
	}
}
