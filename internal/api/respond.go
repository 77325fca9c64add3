// Package api exposes the JSON HTTP surface. Handlers stay thin: decode,
// call a service, encode. All ledger semantics live below this layer.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tripledger/internal/auth"
	"tripledger/internal/calculator"
	"tripledger/internal/service"
	"tripledger/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors to HTTP status codes. Authorization
// failures from the membership gate pass through unchanged as 403;
// anything unrecognized becomes an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotAuthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, service.ErrExpenseSettled):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case calculator.IsValidationError(err),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		slog.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
