package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pnw_targets/internal/app"

	"github.com/rs/zerolog/log"
)

// errorResponse is the body of every failed search
type errorResponse struct {
	Error       string `json:"error"`
	SearchTitle string `json:"searchTitle"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, title, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, SearchTitle: title})
}

// statusFor maps an error kind to the HTTP status reported to the caller
func statusFor(err error) int {
	switch kind := app.KindOf(err); {
	case kind == nil:
		return http.StatusInternalServerError
	case errors.Is(kind, app.ErrInput):
		return http.StatusBadRequest
	case errors.Is(kind, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, app.ErrRateLimit):
		return http.StatusTooManyRequests
	case errors.Is(kind, app.ErrConfiguration):
		return http.StatusInternalServerError
	default:
		// upstream failures: authentication, authorization, protocol, transport, aggregation
		return http.StatusBadGateway
	}
}
