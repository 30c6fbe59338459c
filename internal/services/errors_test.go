package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lyricsync/internal/history"
	"lyricsync/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "write", "caption", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"write", "caption", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected generic detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want history.Status
	}{
		{"validation", services.Wrap(services.ErrValidation, "parse", "lyrics", "empty", nil), history.StatusRejected},
		{"not found", services.Wrap(services.ErrNotFound, "read", "transcript", "missing", nil), history.StatusRejected},
		{"timeout marker", services.Wrap(services.ErrTimeout, "sync", "reconcile", "budget", nil), history.StatusTimedOut},
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), history.StatusTimedOut},
		{"transient", services.Wrap(services.ErrTransient, "write", "copy", "copy failed", errors.New("io")), history.StatusFailed},
		{"nil", nil, history.StatusFailed},
	}
	for _, tt := range tests {
		if status := services.FailureStatus(tt.err); status != tt.want {
			t.Fatalf("%s: expected %s, got %s", tt.name, tt.want, status)
		}
	}
}

func TestStageOfReportsOutermostStage(t *testing.T) {
	inner := services.Wrap(services.ErrNotFound, "read", "transcript", "", errors.New("no such file"))
	outer := fmt.Errorf("sync: %w", services.Wrap(services.ErrValidation, "sync", "load", "", inner))

	if got := services.StageOf(outer); got != "sync" {
		t.Fatalf("StageOf = %q, want sync", got)
	}
	if !errors.Is(outer, services.ErrNotFound) || !errors.Is(outer, services.ErrValidation) {
		t.Fatalf("expected both markers in chain: %v", outer)
	}
	if services.StageOf(errors.New("plain")) != "" {
		t.Fatal("expected empty stage for unclassified error")
	}
}
