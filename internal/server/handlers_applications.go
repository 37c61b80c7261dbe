package server

import (
	"context"
	"github.com/go-chi/chi/v5"
	"net/http"
)

type applyRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	InternshipID uint   `json:"internship_id" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := s.decode(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, "user_id and internship_id are required")
		return
	}

	// the transaction must not be interrupted by a client disconnect
	ctx := context.WithoutCancel(r.Context())
	id, err := s.services.Applications.Apply(ctx, req.UserID, req.InternshipID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"success":        true,
		"message":        "Application submitted successfully",
		"application_id": id,
	})
}

func (s *Server) handleUserApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.services.Applications.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "applications": applications})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.services.Applications.Summary(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"success":            true,
		"total_applications": summary.Total,
		"applications":       summary.Applications,
	})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	application, err := s.services.Applications.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "application": application})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := s.decode(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := context.WithoutCancel(r.Context())
	if err := s.services.Applications.SetStatus(ctx, chi.URLParam(r, "id"), req.Status); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "Status updated successfully"})
}
