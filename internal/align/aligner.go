package align

import "lyricsync/internal/lyrics"

// DefaultMaxCells bounds the cost matrix at roughly 2000 x 2000 tokens.
const DefaultMaxCells int64 = 4_000_000

// Pair is one step of an alignment. At least one side is set; both are set
// for a diagonal move.
type Pair struct {
	A    *lyrics.Token `json:"a,omitempty"`
	B    *lyrics.Token `json:"b,omitempty"`
	Move Move          `json:"move"`
}

// Alignment is the ordered result of aligning two sequences.
type Alignment struct {
	Pairs []Pair `json:"pairs"`
	Cost  int    `json:"cost"`
}

// Matches counts the diagonal steps.
func (al Alignment) Matches() int {
	n := 0
	for _, p := range al.Pairs {
		if p.Move == MoveMatch {
			n++
		}
	}
	return n
}

// Option is a functional option for configuring an [Aligner].
type Option func(*Aligner)

// WithCostModel replaces the default penalties.
func WithCostModel(model CostModel) Option {
	return func(a *Aligner) {
		a.costs = model
	}
}

// WithMaxCells sets the cost-matrix cell ceiling. Non-positive values keep
// the default.
func WithMaxCells(limit int64) Option {
	return func(a *Aligner) {
		if limit > 0 {
			a.maxCells = limit
		}
	}
}

// Aligner computes global token alignments. It is read-only after
// construction and safe for concurrent use; every call owns its matrix.
type Aligner struct {
	costs    CostModel
	maxCells int64
}

// New returns an Aligner with the default cost model and cell ceiling,
// adjusted by opts.
func New(opts ...Option) *Aligner {
	a := &Aligner{
		costs:    DefaultCostModel(),
		maxCells: DefaultMaxCells,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CostModel returns the penalties in use.
func (a *Aligner) CostModel() CostModel {
	return a.costs
}

// MaxCells returns the cell ceiling in use.
func (a *Aligner) MaxCells() int64 {
	return a.maxCells
}

// Align returns the minimum-cost alignment of seqA against seqB. Every token
// of both sequences appears in exactly one pair, in original order.
func (a *Aligner) Align(seqA, seqB []lyrics.Token) (Alignment, error) {
	rows, cols := len(seqA)+1, len(seqB)+1
	cells := int64(rows) * int64(cols)
	if cells > a.maxCells {
		return Alignment{}, oversized(len(seqA), len(seqB), cells, a.maxCells)
	}

	m := newMatrix(rows, cols)
	m.fill(seqA, seqB, a.costs)
	return Alignment{
		Pairs: m.backtrace(seqA, seqB),
		Cost:  m.cost(rows-1, cols-1),
	}, nil
}

// AlignText tokenizes both texts and aligns them.
func (a *Aligner) AlignText(textA, textB string) (Alignment, error) {
	return a.Align(lyrics.Tokenize(textA), lyrics.Tokenize(textB))
}

// SyncText aligns textA against textB and returns textB re-flowed into clean
// lines, one per source line, without section headers.
func (a *Aligner) SyncText(textA, textB string) (string, error) {
	al, err := a.AlignText(textA, textB)
	if err != nil {
		return "", err
	}
	return FuseText(al.Pairs), nil
}
