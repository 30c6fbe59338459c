package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"lyricsync/internal/logging"
)

func TestTeeHandlerNilHandlers(t *testing.T) {
	h := logging.TeeHandler(nil, nil)
	if _, ok := h.(logging.NoopHandler); !ok {
		t.Fatalf("expected NoopHandler, got %T", h)
	}
}

func TestTeeHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := logging.TeeHandler(nil, inner); h != inner {
		t.Fatal("expected lone handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsPerHandlerLevel(t *testing.T) {
	var info, debug bytes.Buffer
	h := logging.TeeHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled through second handler")
	}
	logger := slog.New(h)
	logger.Debug("scored candidate", logging.Float64("score", 0.42))
	if info.Len() != 0 {
		t.Fatalf("info handler received debug record: %s", info.String())
	}
	if !strings.Contains(debug.String(), "scored candidate") {
		t.Fatalf("debug handler missing record: %s", debug.String())
	}
}

func TestTeeHandlerCarriesAttrsAndGroups(t *testing.T) {
	var first, second bytes.Buffer
	logger := slog.New(logging.TeeHandler(slog.NewJSONHandler(&first, nil), slog.NewJSONHandler(&second, nil)))
	logger.With(logging.String(logging.FieldRunID, "run-1")).WithGroup("reconcile").Info("matched", logging.Block(3))

	for name, buf := range map[string]*bytes.Buffer{"first": &first, "second": &second} {
		out := buf.String()
		if !strings.Contains(out, `"run_id":"run-1"`) {
			t.Errorf("%s: missing run_id: %s", name, out)
		}
		if !strings.Contains(out, `"reconcile":{"block":3}`) {
			t.Errorf("%s: missing grouped attr: %s", name, out)
		}
	}
}
