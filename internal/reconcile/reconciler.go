package reconcile

import (
	"log/slog"
	"slices"
	"strings"

	"lyricsync/internal/logging"
	"lyricsync/internal/textutil"
	"lyricsync/internal/transcript"
)

// Defaults applied by New.
const (
	DefaultThreshold      = 0.7
	DefaultSubstringScore = 0.9
	DefaultFillerMarker   = "yeah"
)

// Entry is one timed reference line.
type Entry struct {
	// Index is the 1-based output position in assignment order.
	Index     int                  `json:"index"`
	Block     int                  `json:"block"`
	Timestamp transcript.Timestamp `json:"timestamp"`
	Line      string               `json:"line"`
	Pass      Pass                 `json:"pass"`
	// Score rates the block text against Line. Direct entries are assigned
	// whatever their score.
	Score float64 `json:"score"`
}

// Result is the outcome of one reconciliation.
type Result struct {
	Entries []Entry `json:"entries"`
	// Dropped lists blocks whose best fallback score did not clear the threshold.
	Dropped []int `json:"dropped,omitempty"`
	// SkippedLeading is the ad-lib block number skipped before the direct pass, or 0.
	SkippedLeading int `json:"skipped_leading,omitempty"`
}

// Counts returns the number of direct and fallback entries.
func (r Result) Counts() (direct, fallback int) {
	for _, e := range r.Entries {
		if e.Pass == PassFallback {
			fallback++
		} else {
			direct++
		}
	}
	return direct, fallback
}

// Reconciler maps transcript timestamps onto reference lines. It holds only
// immutable settings and is safe for concurrent use.
type Reconciler struct {
	threshold      float64
	substringScore float64
	fillerMarker   string
	scorer         Scorer
	logger         *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithThreshold sets the score a fallback match must strictly exceed.
func WithThreshold(threshold float64) Option {
	return func(r *Reconciler) {
		r.threshold = threshold
	}
}

// WithSubstringScore sets the score given to lines contained in one another.
// It only affects the default scorer; explicit scorers carry their own.
func WithSubstringScore(score float64) Option {
	return func(r *Reconciler) {
		r.substringScore = score
	}
}

// WithFillerMarker sets the word that marks a leading ad-lib block. An empty
// marker disables the skip.
func WithFillerMarker(marker string) Option {
	return func(r *Reconciler) {
		r.fillerMarker = strings.TrimSpace(marker)
	}
}

// WithScorer replaces the line similarity scorer.
func WithScorer(scorer Scorer) Option {
	return func(r *Reconciler) {
		if scorer != nil {
			r.scorer = scorer
		}
	}
}

// WithLogger attaches a logger for per-block decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a Reconciler using the default threshold, substring score,
// filler marker and charset scorer unless overridden.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		threshold:      DefaultThreshold,
		substringScore: DefaultSubstringScore,
		fillerMarker:   DefaultFillerMarker,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.scorer == nil {
		r.scorer = CharsetScorer{SubstringScore: r.substringScore}
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.logger = logging.NewComponentLogger(r.logger, "reconcile")
	return r
}

// Threshold returns the configured fallback threshold.
func (r *Reconciler) Threshold() float64 { return r.threshold }

// Reconcile assigns transcript timestamps to lines. Empty lines or an empty
// transcript yield an empty result.
func (r *Reconciler) Reconcile(t *transcript.Transcript, lines []string) Result {
	var result Result
	if len(lines) == 0 || t.Empty() {
		return result
	}
	lowest, _, _ := t.Bounds()

	offset := 0
	if r.isFiller(t.Texts[lowest]) {
		result.SkippedLeading = lowest
		offset = 1
		r.logger.Debug("leading ad-lib skipped",
			logging.Args(append(logging.DecisionAttrs("leading_skip", "skipped", "filler marker present"),
				logging.Block(lowest))...)...)
	}
	candidates := t.Numbers()
	if offset == 1 {
		candidates = slices.DeleteFunc(candidates, func(n int) bool { return n == lowest })
	}

	l := newLedger()
	r.directPass(t, lines, candidates, lowest, offset, l)
	result.Dropped = r.fallbackPass(t, lines, candidates, l)
	result.Entries = l.entries

	direct, fallback := result.Counts()
	r.logger.Debug("reconciliation complete",
		logging.Int("reference_lines", len(lines)),
		logging.Int("direct_matches", direct),
		logging.Int("fallback_matches", fallback),
		logging.Int("dropped_blocks", len(result.Dropped)),
	)
	return result
}

// directPass walks block numbers in lockstep with lines, starting offset
// blocks after lowest. Each slot in the window consumes a line only when its
// block carries a timestamp; blocks past the window are left to the fallback.
func (r *Reconciler) directPass(t *transcript.Transcript, lines []string, candidates []int, lowest, offset int, l *ledger) {
	next := 0
	for _, block := range candidates {
		if block-lowest >= len(lines)+offset || next >= len(lines) {
			return
		}
		ts := t.Timestamps[block]
		line := lines[next]
		next++
		l.assign(block, ts, line, PassDirect, r.scorer.Score(t.Texts[block], line))
	}
}

// fallbackPass scores every unassigned block against all lines and returns the
// blocks that cleared no threshold.
func (r *Reconciler) fallbackPass(t *transcript.Transcript, lines []string, candidates []int, l *ledger) []int {
	var dropped []int
	for _, block := range candidates {
		if l.done(block) {
			continue
		}
		ts := t.Timestamps[block]
		text, hasText := t.Texts[block]
		if !hasText {
			continue
		}
		best, bestScore := -1, 0.0
		for i, line := range lines {
			score := r.scorer.Score(text, line)
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 && bestScore > r.threshold {
			l.assign(block, ts, lines[best], PassFallback, bestScore)
			r.logger.Debug("fallback match",
				logging.Args(append(logging.DecisionAttrs("fallback_match", "accepted", "score above threshold"),
					logging.Block(block),
					logging.Int("line", best+1),
					logging.Score("score", bestScore))...)...)
			continue
		}
		dropped = append(dropped, block)
		r.logger.Debug("block dropped",
			logging.Args(append(logging.DecisionAttrs("fallback_match", "rejected", "no line above threshold"),
				logging.Block(block),
				logging.Score("best_score", bestScore))...)...)
	}
	return dropped
}

func (r *Reconciler) isFiller(text string) bool {
	if r.fillerMarker == "" || strings.TrimSpace(text) == "" {
		return false
	}
	return strings.Contains(textutil.Fold(text), textutil.Fold(r.fillerMarker))
}
