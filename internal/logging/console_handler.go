package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// infoFieldLimit caps the fields printed beneath an info line; the rest are
// counted as hidden. Debug lines print everything.
const infoFieldLimit = 8

const consoleTimeLayout = "2006-01-02 15:04:05"

type field struct {
	key   string
	value slog.Value
}

// consoleHandler renders one header line per record followed by indented
// "- key: value" fields. Attributes added through WithAttrs are flattened
// once, with the group prefix active at that point.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	addSource bool
	preset    []field
	prefix    string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = append(append([]field(nil), h.preset...), flatten(h.prefix, attrs)...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := append([]field(nil), h.preset...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, flatten(h.prefix, []slog.Attr{attr})...)
		return true
	})
	fields = lastWins(fields)

	var component, runID, stage string
	body := fields[:0]
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			component = plainValue(f.value)
		case FieldRunID:
			runID = plainValue(f.value)
		case FieldStage:
			stage = plainValue(f.value)
		default:
			body = append(body, f)
		}
	}

	var b strings.Builder
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Local().Format(consoleTimeLayout))
	b.WriteString(" " + levelLabel(record.Level))
	if component != "" {
		b.WriteString(" [" + component + "]")
	}
	if subject := runSubject(runID, stage); subject != "" {
		b.WriteString(" " + subject)
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	b.WriteString(" – " + message)
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	b.WriteByte('\n')

	limit := 0
	if record.Level >= slog.LevelInfo {
		limit = infoFieldLimit
	}
	shown, hidden := highlightFirst(body, limit)
	for _, f := range shown {
		b.WriteString("    - " + f.key + ": " + quotedValue(f.value) + "\n")
	}
	switch {
	case hidden == 1:
		b.WriteString("    + 1 more field hidden\n")
	case hidden > 1:
		b.WriteString("    + " + strconv.Itoa(hidden) + " more fields hidden\n")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// flatten expands groups into dotted keys under prefix and drops empty attrs.
func flatten(prefix string, attrs []slog.Attr) []field {
	var out []field
	for _, attr := range attrs {
		if attr.Equal(slog.Attr{}) {
			continue
		}
		value := attr.Value.Resolve()
		if value.Kind() == slog.KindGroup {
			inner := prefix
			if attr.Key != "" {
				inner = prefix + attr.Key + "."
			}
			out = append(out, flatten(inner, value.Group())...)
			continue
		}
		if attr.Key == "" {
			continue
		}
		out = append(out, field{key: prefix + attr.Key, value: value})
	}
	return out
}

// lastWins keeps the first position of each key with its latest value.
func lastWins(fields []field) []field {
	if len(fields) < 2 {
		return fields
	}
	pos := make(map[string]int, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if i, ok := pos[f.key]; ok {
			out[i].value = f.value
			continue
		}
		pos[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

// highlightFirst orders highlight keys ahead of the rest and truncates to
// limit when limit > 0.
func highlightFirst(fields []field, limit int) ([]field, int) {
	rank := func(key string) int {
		for i, k := range highlightKeys {
			if k == key {
				return i
			}
		}
		return len(highlightKeys)
	}
	ordered := make([]field, 0, len(fields))
	for r := 0; r <= len(highlightKeys); r++ {
		for _, f := range fields {
			if rank(f.key) == r {
				ordered = append(ordered, f)
			}
		}
	}
	if limit > 0 && len(ordered) > limit {
		return ordered[:limit], len(ordered) - limit
	}
	return ordered, 0
}

func runSubject(runID, stage string) string {
	runID = strings.TrimSpace(runID)
	if len(runID) > 8 {
		runID = runID[:8]
	}
	stage = strings.TrimSpace(stage)
	switch {
	case runID != "" && stage != "":
		return "Run " + runID + " (" + stage + ")"
	case runID != "":
		return "Run " + runID
	default:
		return stage
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// plainValue renders v without quoting, for header fields.
func plainValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().Local().Format(consoleTimeLayout)
	default:
		return v.String()
	}
}

// quotedValue renders v, quoting strings that contain spaces, quotes or '='.
// Empty strings render as "".
func quotedValue(v slog.Value) string {
	s := plainValue(v)
	switch v.Kind() {
	case slog.KindString, slog.KindAny:
		if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
			return strconv.Quote(s)
		}
	}
	return s
}
