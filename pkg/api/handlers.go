package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/referralworks/refnet/pkg/logging"
	"github.com/referralworks/refnet/pkg/referral"
	"github.com/referralworks/refnet/pkg/validation"
	"github.com/referralworks/refnet/pkg/views"
)

// handleNetwork serves the forest, optionally narrowed to one subtree via
// the focus query parameter (record identifier or referral code).
func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	forest, ok := s.build(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, forest)
}

// handleDirectory serves the flat recruiter directory view.
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	forest, ok := s.build(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, views.Directory(forest))
}

// handleGraph serves the node/edge feed for the graph canvas.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	forest, ok := s.build(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, views.Graph(forest))
}

// handleHealth reports liveness and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

// build validates the request, runs one forest build, and writes the error
// response itself when something goes wrong.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (*referral.Forest, bool) {
	req := validation.BuildRequest{Focus: r.URL.Query().Get("focus")}
	if err := validation.ValidateBuildRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	forest, err := s.svc.Build(r.Context(), referral.ParseFocusKey(req.Focus))
	if err != nil {
		// Log the cause, return a generic message to the client.
		s.log.Error("build failed", logging.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, "network build failed")
		return nil, false
	}
	return forest, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encoding failed", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
