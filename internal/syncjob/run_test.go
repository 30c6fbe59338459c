package syncjob_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/history"
	"lyricsync/internal/services"
	"lyricsync/internal/syncjob"
	"lyricsync/internal/testsupport"
	"lyricsync/internal/transcript"
)

func newEngine(t *testing.T, cfg *config.Config) (*syncjob.Engine, *history.Store) {
	t.Helper()

	var store *history.Store
	if cfg.Sync.RecordHistory {
		store = testsupport.MustOpenStore(t, cfg)
	}
	engine, err := syncjob.NewEngine(cfg, store, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine, store
}

func TestRunWritesSRTAndRecordsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	engine, store := newEngine(t, cfg)
	transcriptPath, lyricsPath := testsupport.WriteFixturePair(t, t.TempDir())

	res, err := engine.Run(context.Background(), syncjob.Request{TranscriptPath: transcriptPath, LyricsPath: lyricsPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != history.StatusCompleted {
		t.Fatalf("status = %s", res.Status)
	}
	if res.OutputPath != lyricsPath+".srt" {
		t.Fatalf("output path = %q", res.OutputPath)
	}

	data, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	parsed, err := transcript.ParseString(string(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed.Timestamps) != 4 {
		t.Fatalf("expected 4 cues, got %d:\n%s", len(parsed.Timestamps), data)
	}
	if parsed.Texts[1] != "Dust off the shoulders, heavyweight soldier" {
		t.Fatalf("first cue text %q", parsed.Texts[1])
	}
	if parsed.Texts[4] != "Keep it movin', never losin'" {
		t.Fatalf("repeated chorus cue text %q", parsed.Texts[4])
	}
	if got := parsed.Timestamps[1].String(); got != "00:00:04,460 --> 00:00:07,180" {
		t.Fatalf("first cue timing %q", got)
	}

	run, err := store.Get(context.Background(), res.RunID)
	if err != nil || run == nil {
		t.Fatalf("history Get: %v, %v", run, err)
	}
	if run.Status != history.StatusCompleted || run.Source != history.SourceCLI {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.DirectMatches != 3 || run.FallbackMatches != 1 || run.SkippedLeading != 1 {
		t.Fatalf("unexpected counts %+v", run)
	}
	if run.ReferenceLines != 3 || run.TranscriptBlocks != 5 || run.FinishedAt == nil {
		t.Fatalf("unexpected run totals %+v", run)
	}
}

func TestRunUsesConfiguredFormat(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOutputFormat("lrc"), testsupport.WithoutHistory())
	engine, _ := newEngine(t, cfg)
	transcriptPath, lyricsPath := testsupport.WriteFixturePair(t, t.TempDir())

	res, err := engine.Run(context.Background(), syncjob.Request{TranscriptPath: transcriptPath, LyricsPath: lyricsPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Base(res.OutputPath) != "song.txt.lrc" {
		t.Fatalf("output path = %q", res.OutputPath)
	}
	if !strings.HasPrefix(res.Output, "[00:04.46] Dust off the shoulders, heavyweight soldier\n") {
		t.Fatalf("unexpected lrc output %q", res.Output)
	}
	if engine.Store() != nil {
		t.Fatal("history disabled engine should have no store")
	}
}

func TestRunInlineDryRun(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	engine, _ := newEngine(t, cfg)

	res, err := engine.Run(context.Background(), syncjob.Request{
		Transcript: testsupport.Transcript,
		Lyrics:     testsupport.Lyrics,
		Format:     "json",
		DryRun:     true,
		Source:     history.SourceAPI,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OutputPath != "" {
		t.Fatalf("dry run wrote %q", res.OutputPath)
	}
	if !strings.Contains(res.Output, `"timestamp": "[00:12.10]"`) {
		t.Fatalf("json output missing fallback line: %s", res.Output)
	}
	if len(res.Reconciled.Entries) != 4 {
		t.Fatalf("entries = %d", len(res.Reconciled.Entries))
	}
}

func TestRunEmptyLyricsIsNotAnError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	engine, store := newEngine(t, cfg)
	dir := t.TempDir()
	transcriptPath := testsupport.WriteText(t, filepath.Join(dir, "song.mp3.srt"), testsupport.Transcript)
	lyricsPath := testsupport.WriteText(t, filepath.Join(dir, "song.txt"), "[Intro]\n\n")

	res, err := engine.Run(context.Background(), syncjob.Request{TranscriptPath: transcriptPath, LyricsPath: lyricsPath})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != history.StatusEmpty || res.OutputPath != "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := os.Stat(lyricsPath + ".srt"); !os.IsNotExist(err) {
		t.Fatalf("empty run should not write output, stat err = %v", err)
	}
	run, err := store.Get(context.Background(), res.RunID)
	if err != nil || run == nil || run.Status != history.StatusEmpty {
		t.Fatalf("history run = %+v, %v", run, err)
	}
}

func TestRunMissingTranscriptIsRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	engine, store := newEngine(t, cfg)
	dir := t.TempDir()
	lyricsPath := testsupport.WriteText(t, filepath.Join(dir, "song.txt"), testsupport.Lyrics)

	_, err := engine.Run(context.Background(), syncjob.Request{
		TranscriptPath: filepath.Join(dir, "missing.srt"),
		LyricsPath:     lyricsPath,
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	runs, err := store.List(context.Background(), history.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != history.StatusRejected || runs[0].ErrorMessage == "" {
		t.Fatalf("unexpected history %+v", runs)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	engine, _ := newEngine(t, cfg)
	_, err := engine.Run(context.Background(), syncjob.Request{Transcript: "x", Lyrics: "y", Format: "vtt"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewEngineRejectsUnknownScorer(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	cfg.Reconcile.Scorer = "levenshtein"
	if _, err := syncjob.NewEngine(cfg, nil, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
