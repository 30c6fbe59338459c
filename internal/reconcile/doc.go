// Package reconcile reassigns transcript block timestamps to clean reference
// lyric lines.
//
// A Reconciler runs two passes over a parsed transcript. The direct pass walks
// timestamp-bearing blocks in ascending order and hands each the next unused
// reference line. The fallback pass scores every block the direct pass left
// behind against all reference lines and keeps the best line when its score
// clears the configured threshold; typically this catches repeated choruses.
// A ledger records which blocks have been assigned so no block produces more
// than one entry.
package reconcile
