package align

import (
	"fmt"

	"lyricsync/internal/lyrics"
)

// Move records how a matrix cell was reached.
type Move uint8

const (
	// MoveMatch pairs a token from each sequence (diagonal step).
	MoveMatch Move = iota
	// MoveGapLeft consumes a token from the first sequence only.
	MoveGapLeft
	// MoveGapUp consumes a token from the second sequence only.
	MoveGapUp
)

func (m Move) String() string {
	switch m {
	case MoveMatch:
		return "match"
	case MoveGapLeft:
		return "gap_left"
	case MoveGapUp:
		return "gap_up"
	default:
		return "unknown"
	}
}

// MarshalText renders the move name for JSON payloads.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a move name written by MarshalText.
func (m *Move) UnmarshalText(text []byte) error {
	for _, candidate := range []Move{MoveMatch, MoveGapLeft, MoveGapUp} {
		if candidate.String() == string(text) {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown move %q", text)
}

// matrix is a flat arena of cumulative costs and the move that produced each
// cell, indexed x*cols+y.
type matrix struct {
	cols  int
	costs []int
	moves []Move
}

func newMatrix(rows, cols int) *matrix {
	n := rows * cols
	return &matrix{
		cols:  cols,
		costs: make([]int, n),
		moves: make([]Move, n),
	}
}

func (m *matrix) index(x, y int) int {
	return x*m.cols + y
}

func (m *matrix) cost(x, y int) int {
	return m.costs[m.index(x, y)]
}

func (m *matrix) set(x, y, cost int, move Move) {
	i := m.index(x, y)
	m.costs[i] = cost
	m.moves[i] = move
}

func (m *matrix) fill(a, b []lyrics.Token, model CostModel) {
	for x := 1; x <= len(a); x++ {
		m.set(x, 0, m.cost(x-1, 0)+model.GapCost(a[x-1]), MoveGapLeft)
	}
	for y := 1; y <= len(b); y++ {
		m.set(0, y, m.cost(0, y-1)+model.GapCost(b[y-1]), MoveGapUp)
	}

	for x := 1; x <= len(a); x++ {
		tokA := a[x-1]
		gapA := model.GapCost(tokA)
		for y := 1; y <= len(b); y++ {
			tokB := b[y-1]
			diag := m.cost(x-1, y-1) + model.MatchCost(tokA, tokB)
			left := m.cost(x-1, y) + gapA
			up := m.cost(x, y-1) + model.GapCost(tokB)

			switch {
			case diag <= left && diag <= up:
				m.set(x, y, diag, MoveMatch)
			case left <= up:
				m.set(x, y, left, MoveGapLeft)
			default:
				m.set(x, y, up, MoveGapUp)
			}
		}
	}
}

func (m *matrix) backtrace(a, b []lyrics.Token) []Pair {
	pairs := make([]Pair, 0, len(a)+len(b))
	x, y := len(a), len(b)
	for x > 0 || y > 0 {
		move := m.moves[m.index(x, y)]
		switch {
		case x > 0 && y > 0 && move == MoveMatch:
			tokA, tokB := a[x-1], b[y-1]
			pairs = append(pairs, Pair{A: &tokA, B: &tokB, Move: MoveMatch})
			x--
			y--
		case x > 0 && move == MoveGapLeft:
			tokA := a[x-1]
			pairs = append(pairs, Pair{A: &tokA, Move: MoveGapLeft})
			x--
		default:
			tokB := b[y-1]
			pairs = append(pairs, Pair{B: &tokB, Move: MoveGapUp})
			y--
		}
	}
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return pairs
}
