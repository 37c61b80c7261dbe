package server

import (
	"net/http"
)

type matchRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := s.decode(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, "user_id required")
		return
	}

	matches, err := s.services.Matches.FindMatches(r.Context(), req.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "matches": matches})
}
