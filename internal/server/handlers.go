package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"lyricsync/internal/align"
	"lyricsync/internal/history"
	"lyricsync/internal/logging"
	"lyricsync/internal/services"
	"lyricsync/internal/syncjob"
)

const (
	defaultRunLimit = 50
	maxRunLimit     = 500
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		s.writeError(w, r, http.StatusBadRequest, "transcript is required")
		return
	}
	res, err := s.engine.Run(r.Context(), syncjob.Request{
		Transcript: req.Transcript,
		Lyrics:     req.Lyrics,
		Format:     req.Format,
		Source:     history.SourceAPI,
		DryRun:     true,
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if !s.decode(w, r, &req) {
		return
	}
	al, err := s.engine.Align(r.Context(), req.Source, req.Target)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	resp := AlignResponse{
		Text:    align.FuseText(al.Pairs),
		Cost:    al.Cost,
		Matches: al.Matches(),
	}
	if req.IncludePairs {
		resp.Pairs = al.Pairs
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Store()
	if store == nil {
		s.writeJSON(w, http.StatusOK, RunListResponse{Runs: []*history.Run{}})
		return
	}
	opts := history.ListOptions{Limit: defaultRunLimit}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		opts.Limit = min(limit, maxRunLimit)
	}
	for _, value := range r.URL.Query()["status"] {
		if strings.TrimSpace(value) == "" {
			continue
		}
		status, ok := history.ParseStatus(value)
		if !ok {
			s.writeError(w, r, http.StatusBadRequest, "invalid status "+strconv.Quote(value))
			return
		}
		opts.Statuses = append(opts.Statuses, status)
	}

	runs, err := store.List(r.Context(), opts)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	s.writeJSON(w, http.StatusOK, RunListResponse{Runs: runs})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	store := s.engine.Store()
	if store == nil || id == "" {
		s.writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	run, err := store.Get(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if run == nil {
		s.writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	s.writeJSON(w, http.StatusOK, RunResponse{Run: run})
}

// writeFailure maps engine and host errors to HTTP statuses.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), "api request failed", "api_request_failed",
			logging.Error(err),
			logging.String(logging.FieldStage, services.StageOf(err)),
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
		)
	}
	s.writeError(w, r, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, align.ErrOversizedAlignment):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
