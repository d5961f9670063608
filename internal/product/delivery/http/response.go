package http

import (
	"encoding/json"
	"net/http"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/logger"
)

// Response is the envelope of error, health and status answers. Queries
// answer with the bare record so callers can read field names directly.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}

// respondEmpty ends a mutation without a payload.
func respondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case domain.IsNotFoundError(err):
		return http.StatusNotFound
	case domain.IsForbiddenError(err):
		return http.StatusForbidden
	case domain.IsConflictError(err):
		return http.StatusConflict
	case domain.IsInvalidArgumentError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError writes the mapped status. Unexpected errors are logged
// and answered with a generic message.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		respondError(w, status, "Internal server error")
		return
	}
	respondError(w, status, err.Error())
}
