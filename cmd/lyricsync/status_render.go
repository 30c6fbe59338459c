package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"lyricsync/internal/history"
	"lyricsync/internal/syncjob"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusStyles = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed}},
}

const statusLabelWidth = 18

// statusWriter prints aligned "label: [KIND] message" lines, coloured when
// the destination is a terminal.
type statusWriter struct {
	lines    []string
	colorize bool
}

func newStatusWriter(colorize bool) *statusWriter {
	return &statusWriter{colorize: colorize}
}

func (s *statusWriter) section(title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if s.colorize {
		line, rule = text.FgBlue.Sprint(line), text.FgBlue.Sprint(rule)
	}
	s.lines = append(s.lines, line, rule)
}

func (s *statusWriter) line(label string, kind statusKind, format string, args ...any) {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	msg := fmt.Sprintf(format, args...)
	out := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", style.label)
	if msg != "" {
		out += " " + msg
	}
	if s.colorize {
		out = style.colors.Sprint(out)
	}
	s.lines = append(s.lines, out)
}

func (s *statusWriter) writeTo(w io.Writer) error {
	for _, line := range s.lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runStatusKind(status history.Status) statusKind {
	switch status {
	case history.StatusCompleted:
		return statusOK
	case history.StatusEmpty, history.StatusRunning:
		return statusWarn
	case history.StatusFailed, history.StatusRejected, history.StatusTimedOut:
		return statusError
	default:
		return statusInfo
	}
}

// writeSyncSummary describes a finished sync.
func writeSyncSummary(w io.Writer, result *syncjob.Result) error {
	s := newStatusWriter(shouldColorize(w))
	direct, fallback := result.Reconciled.Counts()
	s.section("Sync " + shortID(result.RunID))
	s.line("Status", runStatusKind(result.Status), "%s", result.Status)
	s.line("Reference lines", statusInfo, "%d", result.ReferenceLines)
	s.line("Transcript blocks", statusInfo, "%d", result.TranscriptBlocks)
	s.line("Matched", statusOK, "%d direct, %d fallback", direct, fallback)
	if n := len(result.Reconciled.Dropped); n > 0 {
		s.line("Dropped", statusWarn, "%d blocks below threshold", n)
	}
	if n := len(result.Skipped); n > 0 {
		s.line("Malformed", statusWarn, "%d blocks skipped", n)
	}
	if block := result.Reconciled.SkippedLeading; block > 0 {
		s.line("Leading filler", statusInfo, "block %d skipped", block)
	}
	if result.OutputPath != "" {
		s.line("Output", statusInfo, "%s", result.OutputPath)
	}
	return s.writeTo(w)
}
