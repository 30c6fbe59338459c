// Package history records sync runs in SQLite.
//
// Every CLI, batch or API sync inserts a Run when it starts and updates it
// when it finishes, so `lyricsync history` and `GET /api/runs` can report
// what was synced, with which scorer, and how many lines landed in each
// reconciliation pass. Schema changes ship as numbered files under
// migrations/ and are applied in order on Open.
package history
