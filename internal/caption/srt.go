package caption

import (
	"bufio"
	"fmt"
	"io"

	"lyricsync/internal/reconcile"
)

// WriteSRT writes one cue per entry numbered by Entry.Index, separated by
// blank lines.
func WriteSRT(w io.Writer, entries []reconcile.Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("write srt: %w", err)
			}
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s\n%s\n", e.Index, e.Timestamp.String(), e.Line); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}
