package caption

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"lyricsync/internal/reconcile"
)

// Output formats.
const (
	FormatSRT  = "srt"
	FormatLRC  = "lrc"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for output formats other than srt, lrc and json.
var ErrUnknownFormat = errors.New("unknown caption format")

// ParseFormat normalizes a format name. An empty name selects SRT.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "":
		return FormatSRT, nil
	case FormatSRT, FormatLRC, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Extension returns the file extension, with leading dot, for a format.
func Extension(format string) string {
	switch format {
	case FormatLRC:
		return ".lrc"
	case FormatJSON:
		return ".lrc.json"
	default:
		return ".srt"
	}
}

// Write serialises entries to w in the given format, preserving entry order.
func Write(w io.Writer, format string, entries []reconcile.Entry) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatLRC:
		return WriteLRC(w, FromEntries(entries))
	case FormatJSON:
		return WriteLRCJSON(w, FromEntries(entries))
	default:
		return WriteSRT(w, entries)
	}
}

// Render returns entries serialised in the given format.
func Render(format string, entries []reconcile.Entry) (string, error) {
	var b strings.Builder
	if err := Write(&b, format, entries); err != nil {
		return "", err
	}
	return b.String(), nil
}
