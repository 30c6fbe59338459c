package server

import (
	"lyricsync/internal/align"
	"lyricsync/internal/history"
)

// SyncRequest is the body of POST /api/sync.
type SyncRequest struct {
	Transcript string `json:"transcript"`
	Lyrics     string `json:"lyrics"`
	Format     string `json:"format,omitempty"`
}

// AlignRequest is the body of POST /api/align. Target is re-flowed into the
// line structure of Source.
type AlignRequest struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	IncludePairs bool   `json:"include_pairs,omitempty"`
}

// AlignResponse is returned by POST /api/align.
type AlignResponse struct {
	Text    string       `json:"text"`
	Cost    int          `json:"cost"`
	Matches int          `json:"matches"`
	Pairs   []align.Pair `json:"pairs,omitempty"`
}

// RunListResponse is returned by GET /api/runs.
type RunListResponse struct {
	Runs []*history.Run `json:"runs"`
}

// RunResponse is returned by GET /api/runs/{id}.
type RunResponse struct {
	Run *history.Run `json:"run"`
}

// ErrorResponse carries a failure message and the request correlation ID.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
