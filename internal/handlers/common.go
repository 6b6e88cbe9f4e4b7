package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dating-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// statusForError maps service errors to HTTP status codes. Unexpected errors
// become 500; their detail is logged by the caller, not echoed to the client.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateLike), errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the message exposed to the client for an error.
// Expected errors surface their sentinel text; everything else is generic.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return services.ErrNotFound.Error()
	case errors.Is(err, services.ErrDuplicateLike):
		return services.ErrDuplicateLike.Error()
	case errors.Is(err, services.ErrInvalidInput):
		return err.Error()
	default:
		return "internal server error"
	}
}
