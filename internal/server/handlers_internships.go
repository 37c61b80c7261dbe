package server

import (
	"github.com/go-chi/chi/v5"
	"net/http"
	"strconv"
)

func (s *Server) handleListInternships(w http.ResponseWriter, r *http.Request) {
	internships, err := s.services.Catalog.GetAll(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "internships": internships})
}

func (s *Server) handleGetInternship(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		errorResponse(w, http.StatusBadRequest, "invalid internship id")
		return
	}

	internship, err := s.services.Catalog.GetByID(r.Context(), uint(id))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "internship": internship})
}
