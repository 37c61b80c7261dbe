package server

import (
	"context"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"net/http"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.services.Profiles.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "profile": profile})
}

// handleSaveProfile replaces the whole profile, collections included. The
// user id is taken from the path.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile.UserID = chi.URLParam(r, "userID")

	ctx := context.WithoutCancel(r.Context())
	if err := s.services.Profiles.Save(ctx, profile); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "Profile saved successfully"})
}
