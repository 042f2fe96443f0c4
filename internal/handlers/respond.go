package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/credentials"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps service sentinels onto HTTP statuses. Internal detail is
// logged, never returned to the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payment signature"})
	case errors.Is(err, services.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
	case errors.Is(err, services.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Permission denied"})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrPersistence):
		logger.Error("persistence failure", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	case errors.Is(err, services.ErrUpstreamUnavailable),
		errors.Is(err, credentials.ErrUnavailable),
		errors.Is(err, credentials.ErrNotAuthenticated):
		logger.Error("upstream failure", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Service temporarily unavailable"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return false
	}
	return true
}
