package syncjob

import (
	"context"

	"lyricsync/internal/align"
	"lyricsync/internal/services"
)

// Align aligns two texts under the configured timeout.
func (e *Engine) Align(ctx context.Context, textA, textB string) (align.Alignment, error) {
	type outcome struct {
		alignment align.Alignment
		err       error
	}
	ctx, cancel := withTimeout(ctx, e.cfg.SyncTimeout())
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		al, err := e.aligner.AlignText(textA, textB)
		done <- outcome{al, err}
	}()
	select {
	case out := <-done:
		if out.err != nil {
			return align.Alignment{}, services.Wrap(services.ErrValidation, "align", "align text", "", out.err)
		}
		return out.alignment, nil
	case <-ctx.Done():
		return align.Alignment{}, services.Wrap(services.ErrTimeout, "align", "align text", "time budget exceeded", ctx.Err())
	}
}

// SyncText aligns textA with textB and returns textB's tokens regrouped into
// textA's line structure.
func (e *Engine) SyncText(ctx context.Context, textA, textB string) (string, error) {
	al, err := e.Align(ctx, textA, textB)
	if err != nil {
		return "", err
	}
	return align.FuseText(al.Pairs), nil
}
