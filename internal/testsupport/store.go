package testsupport

import (
	"context"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertRun records run using the provided store.
func InsertRun(t testing.TB, store *history.Store, run *history.Run) *history.Run {
	t.Helper()

	if err := store.Insert(context.Background(), run); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return run
}
