package server

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/intern-match/internal/logger"
	"github.com/maxaizer/intern-match/internal/repositories"
	"github.com/maxaizer/intern-match/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
)

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before the response was ready.
const statusClientClosedRequest = 499

type errorBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("error encoding JSON response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, errorBody{Success: false, Message: message})
}

// serviceError maps the error taxonomy onto HTTP statuses. Storage failures
// are reported without details.
func serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		log.Debugf("request cancelled by client: %v", err)
		errorResponse(w, statusClientClosedRequest, "request cancelled")
		return
	}

	if errors.Is(err, repositories.ErrNotFound) {
		errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	switch services.Kind(err) {
	case services.ErrValidation, services.ErrInvalidStatus:
		errorResponse(w, http.StatusBadRequest, err.Error())
	case services.ErrNotFound:
		errorResponse(w, http.StatusNotFound, err.Error())
	case services.ErrDuplicateApplication:
		errorResponse(w, http.StatusConflict, "already applied")
	case services.ErrAIMatchTimeout, services.ErrAIMatchMalformed:
		jsonResponse(w, http.StatusServiceUnavailable, errorBody{
			Success:   false,
			Message:   "AI matching failed, please retry",
			Retryable: services.IsRetryable(err),
		})
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("request failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "invalid request body")
	}
	return s.validate.Struct(dst)
}
