// Package align computes a global, minimum-cost alignment between two token
// sequences and re-flows the second sequence into clean lines.
//
// The aligner fills a dense cost matrix of (len(a)+1)*(len(b)+1) cells in
// Needleman-Wunsch fashion. Each cell records which of three moves reached it
// (diagonal match, gap in b, gap in a); ties prefer the diagonal, then the gap
// in b. The backtrace walks those moves from the bottom-right cell to the
// origin and reverses them into reading order.
//
// Costs come from a CostModel: section headers are free, line breaks are
// expensive to break, and a word that differs from its partner only by an
// apostrophe (gettin' vs getting) costs less than a full mismatch.
//
// Matrix size is bounded by a configurable cell ceiling. Inputs beyond the
// ceiling fail with ErrOversizedAlignment before anything is allocated.
package align
