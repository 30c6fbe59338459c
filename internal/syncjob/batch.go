package syncjob

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lyricsync/internal/history"
	"lyricsync/internal/logging"
)

// transcriptSuffixes are tried in order next to each lyric file.
var transcriptSuffixes = []string{".mp3.srt", ".wav.srt", ".flac.srt", ".srt"}

// BatchItem is the outcome of one request in a batch.
type BatchItem struct {
	Request Request `json:"-"`
	Result  *Result `json:"result,omitempty"`
	Err     error   `json:"-"`
}

// Failed reports whether the item ended in error.
func (b BatchItem) Failed() bool { return b.Err != nil }

// RunBatch runs reqs with at most sync.workers in flight. Failures are
// reported per item and do not stop the batch; only cancellation of ctx
// returns an error. Items keep the order of reqs.
func (e *Engine) RunBatch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))
	workers := e.cfg.Sync.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		if req.Source == "" {
			req.Source = history.SourceBatch
		}
		items[i].Request = req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].Err = err
				return err
			}
			items[i].Result, items[i].Err = e.Run(gctx, req)
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	for _, item := range items {
		if item.Failed() {
			failed++
		}
	}
	e.logger.Info("batch complete",
		logging.Int("runs", len(items)),
		logging.Int("failed", failed),
		logging.Int("workers", workers),
	)
	return items, err
}

// DiscoverPairs finds lyric files (*.txt) in dir that have a transcript beside
// them named after the lyric file's base name, such as song.mp3.srt for
// song.txt. Results are sorted by lyric path.
func DiscoverPairs(dir string) ([]Request, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, openError("read batch dir", dir, err)
	}
	var reqs []Request
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		lyricsPath := filepath.Join(dir, entry.Name())
		base := strings.TrimSuffix(lyricsPath, filepath.Ext(lyricsPath))
		for _, suffix := range transcriptSuffixes {
			candidate := base + suffix
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				reqs = append(reqs, Request{
					TranscriptPath: candidate,
					LyricsPath:     lyricsPath,
					Source:         history.SourceBatch,
				})
				break
			}
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].LyricsPath < reqs[j].LyricsPath })
	return reqs, nil
}
