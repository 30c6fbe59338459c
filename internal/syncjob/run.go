package syncjob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"lyricsync/internal/caption"
	"lyricsync/internal/history"
	"lyricsync/internal/logging"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/reconcile"
	"lyricsync/internal/services"
	"lyricsync/internal/transcript"
)

// Request describes one sync. Files take precedence over inline text.
type Request struct {
	TranscriptPath string
	LyricsPath     string
	// Transcript and Lyrics carry inline content when no path is given.
	Transcript string
	Lyrics     string
	// OutputPath overrides the default <lyrics path><ext> destination.
	OutputPath string
	Format     string
	Source     history.Source
	// DryRun renders the captions without writing a file.
	DryRun bool
}

// Result is the outcome of a sync.
type Result struct {
	RunID            string                    `json:"run_id"`
	Status           history.Status            `json:"status"`
	Format           string                    `json:"format"`
	OutputPath       string                    `json:"output_path,omitempty"`
	Output           string                    `json:"output"`
	ReferenceLines   int                       `json:"reference_lines"`
	TranscriptBlocks int                       `json:"transcript_blocks"`
	Skipped          []transcript.SkippedBlock `json:"skipped,omitempty"`
	Reconciled       reconcile.Result          `json:"result"`
}

// Run executes req. Empty input is not an error: the result carries
// StatusEmpty and no file is written.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	format, err := caption.ParseFormat(firstNonEmpty(req.Format, e.cfg.Sync.OutputFormat))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "sync", "parse format", "", err)
	}
	if req.Source == "" {
		req.Source = history.SourceCLI
	}

	run := &history.Run{
		ID:             uuid.NewString(),
		Source:         req.Source,
		TranscriptPath: req.TranscriptPath,
		LyricsPath:     req.LyricsPath,
		OutputPath:     e.outputPath(req, format),
		OutputFormat:   format,
		Scorer:         e.cfg.Reconcile.Scorer,
		Status:         history.StatusRunning,
	}
	ctx = services.WithRunID(ctx, run.ID)
	logger := logging.WithContext(ctx, e.logger)
	e.record(ctx, run)

	result, err := e.execute(ctx, req, run)
	if err != nil {
		run.Status = services.FailureStatus(err)
		run.ErrorMessage = err.Error()
		e.finish(ctx, run)
		logging.ErrorWithContext(logger, "sync failed", "sync_failed",
			logging.Error(err),
			logging.String("status", string(run.Status)),
		)
		return nil, err
	}
	e.finish(ctx, run)
	logger.Info("sync complete",
		logging.String("status", string(result.Status)),
		logging.Int("entries", len(result.Reconciled.Entries)),
		logging.Int("dropped_blocks", len(result.Reconciled.Dropped)),
		logging.String("output", result.OutputPath),
	)
	return result, nil
}

func (e *Engine) execute(ctx context.Context, req Request, run *history.Run) (*Result, error) {
	logger := logging.WithContext(ctx, e.logger)

	tr, err := e.loadTranscript(req)
	if err != nil {
		return nil, err
	}
	lyricText, err := e.loadLyrics(req)
	if err != nil {
		return nil, err
	}
	lines := lyrics.ReferenceLines(lyricText)

	run.ReferenceLines = len(lines)
	run.TranscriptBlocks = len(tr.Timestamps)
	if len(tr.Skipped) > 0 {
		logging.WarnWithContext(logger, "transcript blocks with unreadable timing skipped", "malformed_timestamp",
			logging.Int("skipped_blocks", len(tr.Skipped)),
			logging.String(logging.FieldImpact, "lines sung in those blocks may be missing"),
			logging.String(logging.FieldErrorHint, "check the transcript timing lines"),
		)
	}

	reconciled, err := e.reconcile(ctx, tr, lines)
	if err != nil {
		return nil, err
	}
	direct, fallback := reconciled.Counts()
	run.DirectMatches = direct
	run.FallbackMatches = fallback
	run.DroppedBlocks = len(reconciled.Dropped)
	run.SkippedLeading = reconciled.SkippedLeading

	result := &Result{
		RunID:            run.ID,
		Format:           run.OutputFormat,
		ReferenceLines:   len(lines),
		TranscriptBlocks: len(tr.Timestamps),
		Skipped:          tr.Skipped,
		Reconciled:       reconciled,
	}

	if len(reconciled.Entries) == 0 {
		run.Status = history.StatusEmpty
		result.Status = history.StatusEmpty
		reason := "no transcript blocks matched"
		if len(lines) == 0 {
			reason = "lyrics contain no reference lines"
		} else if tr.Empty() {
			reason = "transcript contains no timed blocks"
		}
		logging.WarnWithContext(logger, "nothing to sync", "empty_reference",
			logging.String("decision_reason", reason),
			logging.String(logging.FieldImpact, "no caption file written"),
			logging.String(logging.FieldErrorHint, "verify the transcript and lyric inputs"),
		)
		run.OutputPath = ""
		return result, nil
	}

	output, err := caption.Render(run.OutputFormat, reconciled.Entries)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "sync", "render", "", err)
	}
	result.Output = output

	if !req.DryRun && run.OutputPath != "" {
		if err := writeOutput(ctx, run.OutputPath, output); err != nil {
			return nil, err
		}
		result.OutputPath = run.OutputPath
	} else {
		run.OutputPath = ""
	}
	run.Status = history.StatusCompleted
	result.Status = history.StatusCompleted
	return result, nil
}

// reconcile runs the engine under the configured timeout. The engine takes no
// context, so on timeout its goroutine finishes in the background.
func (e *Engine) reconcile(ctx context.Context, tr *transcript.Transcript, lines []string) (reconcile.Result, error) {
	ctx, cancel := withTimeout(ctx, e.cfg.SyncTimeout())
	defer cancel()

	done := make(chan reconcile.Result, 1)
	go func() {
		done <- e.reconciler.Reconcile(tr, lines)
	}()
	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return reconcile.Result{}, services.Wrap(services.ErrTimeout, "sync", "reconcile", "time budget exceeded", ctx.Err())
	}
}

func (e *Engine) loadTranscript(req Request) (*transcript.Transcript, error) {
	if req.TranscriptPath == "" {
		tr, err := transcript.ParseString(req.Transcript)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "sync", "parse transcript", "", err)
		}
		return tr, nil
	}
	f, err := os.Open(req.TranscriptPath)
	if err != nil {
		return nil, openError("open transcript", req.TranscriptPath, err)
	}
	defer f.Close()
	tr, err := transcript.Parse(f)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "sync", "read transcript", req.TranscriptPath, err)
	}
	return tr, nil
}

func (e *Engine) loadLyrics(req Request) (string, error) {
	if req.LyricsPath == "" {
		return req.Lyrics, nil
	}
	f, err := os.Open(req.LyricsPath)
	if err != nil {
		return "", openError("open lyrics", req.LyricsPath, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "sync", "read lyrics", req.LyricsPath, err)
	}
	return string(data), nil
}

func (e *Engine) outputPath(req Request, format string) string {
	if req.DryRun {
		return ""
	}
	if out := strings.TrimSpace(req.OutputPath); out != "" {
		return out
	}
	if req.LyricsPath == "" {
		return ""
	}
	return req.LyricsPath + caption.Extension(format)
}

func (e *Engine) record(ctx context.Context, run *history.Run) {
	if e.store == nil {
		return
	}
	run.StartedAt = time.Now().UTC()
	if err := e.store.Insert(ctx, run); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, e.logger), "failed to record sync run", "history_insert_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run will be missing from history"),
		)
	}
}

func (e *Engine) finish(ctx context.Context, run *history.Run) {
	if e.store == nil {
		return
	}
	finished := time.Now().UTC()
	run.FinishedAt = &finished
	if err := e.store.Update(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, e.logger), "failed to update sync run", "history_update_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "history shows the run as unfinished"),
		)
	}
}

func openError(operation, path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return services.Wrap(services.ErrNotFound, "sync", operation, path, err)
	}
	return services.Wrap(services.ErrTransient, "sync", operation, path, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// String summarises the result for log and CLI output.
func (r *Result) String() string {
	if r == nil {
		return ""
	}
	direct, fallback := r.Reconciled.Counts()
	return fmt.Sprintf("%s: %d direct, %d fallback, %d dropped", r.Status, direct, fallback, len(r.Reconciled.Dropped))
}
