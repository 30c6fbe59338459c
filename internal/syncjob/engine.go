package syncjob

import (
	"log/slog"

	"lyricsync/internal/align"
	"lyricsync/internal/config"
	"lyricsync/internal/history"
	"lyricsync/internal/logging"
	"lyricsync/internal/reconcile"
	"lyricsync/internal/services"
)

// Engine wires the alignment and reconciliation engine to configuration,
// history and logging.
type Engine struct {
	cfg        *config.Config
	aligner    *align.Aligner
	reconciler *reconcile.Reconciler
	store      *history.Store
	logger     *slog.Logger
}

// NewEngine builds an Engine from cfg. store may be nil, in which case runs
// are not recorded.
func NewEngine(cfg *config.Config, store *history.Store, logger *slog.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "sync", "init", "config is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	reconciler, err := NewReconciler(cfg, logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Sync.RecordHistory {
		store = nil
	}
	return &Engine{
		cfg:        cfg,
		aligner:    NewAligner(cfg),
		reconciler: reconciler,
		store:      store,
		logger:     logging.NewComponentLogger(logger, "syncjob"),
	}, nil
}

// NewAligner returns an aligner using the configured penalties and ceiling.
func NewAligner(cfg *config.Config) *align.Aligner {
	return align.New(
		align.WithCostModel(align.CostModel{
			LineBreak:          cfg.Align.LineBreakCost,
			WordMismatch:       cfg.Align.WordMismatchCost,
			ApostropheMismatch: cfg.Align.ApostropheMismatchCost,
		}),
		align.WithMaxCells(cfg.Align.MaxCells),
	)
}

// NewReconciler returns a reconciler using the configured threshold, filler
// marker and scorer.
func NewReconciler(cfg *config.Config, logger *slog.Logger) (*reconcile.Reconciler, error) {
	scorer, err := reconcile.ScorerByName(cfg.Reconcile.Scorer, cfg.Reconcile.SubstringScore)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "sync", "init", "reconcile.scorer", err)
	}
	return reconcile.New(
		reconcile.WithThreshold(cfg.Reconcile.SimilarityThreshold),
		reconcile.WithSubstringScore(cfg.Reconcile.SubstringScore),
		reconcile.WithFillerMarker(cfg.Reconcile.FillerMarker),
		reconcile.WithScorer(scorer),
		reconcile.WithLogger(logger),
	), nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Aligner returns the configured aligner.
func (e *Engine) Aligner() *align.Aligner { return e.aligner }

// Store returns the history store, or nil when history is disabled.
func (e *Engine) Store() *history.Store { return e.store }
