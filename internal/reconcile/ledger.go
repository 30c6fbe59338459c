package reconcile

import "lyricsync/internal/transcript"

// ledger tracks assigned blocks and the running output counter.
type ledger struct {
	processed map[int]struct{}
	entries   []Entry
}

func newLedger() *ledger {
	return &ledger{processed: make(map[int]struct{})}
}

func (l *ledger) done(block int) bool {
	_, ok := l.processed[block]
	return ok
}

// assign records block against line. It returns false, changing nothing, when
// the block was already assigned.
func (l *ledger) assign(block int, ts transcript.Timestamp, line string, pass Pass, score float64) bool {
	if l.done(block) {
		return false
	}
	l.processed[block] = struct{}{}
	l.entries = append(l.entries, Entry{
		Index:     len(l.entries) + 1,
		Block:     block,
		Timestamp: ts,
		Line:      line,
		Pass:      pass,
		Score:     score,
	})
	return true
}
