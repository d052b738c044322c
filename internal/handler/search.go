package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pnw_targets/internal/app"
	"pnw_targets/internal/processing"
	"pnw_targets/internal/ratelimit"
)

// Finder runs one kind of target search
type Finder[T any] interface {
	Name() string
	Find(ctx context.Context, nationID int, opts processing.SearchOptions) (*processing.SearchResult[T], error)
}

// Quota is the per-requester search quota
type Quota interface {
	Reserve(ctx context.Context, nationID int) (ratelimit.Reservation, error)
	Release(ctx context.Context, r ratelimit.Reservation) error
	Remaining(ctx context.Context, nationID int) (int, error)
}

type searchResponse[T any] struct {
	Targets     []T         `json:"targets"`
	SearchTitle string      `json:"searchTitle"`
	MyNation    *app.Nation `json:"myNation"`
}

type quotaResponse struct {
	NationID  int `json:"nation_id"`
	Remaining int `json:"remaining"`
}

// Handler serves the raid and beige searches over HTTP
type Handler struct {
	raid  Finder[app.RaidTarget]
	beige Finder[app.BeigeTarget]
	quota Quota
}

// NewHandler creates a Handler
func NewHandler(raid Finder[app.RaidTarget], beige Finder[app.BeigeTarget], quota Quota) *Handler {
	return &Handler{raid: raid, beige: beige, quota: quota}
}

// Routes returns the router for all endpoints, wrapped in the logging middleware
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /raid", serveSearch(h.raid, h.quota))
	mux.HandleFunc("POST /beige", serveSearch(h.beige, h.quota))
	mux.HandleFunc("GET /quota", h.Quota)
	mux.HandleFunc("GET /healthz", Health)
	return Chain(mux, Logger)
}

// Health reports that the server is up
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Quota reports how many searches a requester has left
func (h *Handler) Quota(w http.ResponseWriter, r *http.Request) {
	nationID, err := parseNationID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Input", inputMessage(err))
		return
	}

	remaining, err := h.quota.Remaining(r.Context(), nationID)
	if err != nil {
		requestLogger(r).Error().Err(err).Int("nation_id", nationID).Msg("Failed to read quota")
		writeError(w, statusFor(err), fmt.Sprintf("Error for Nation ID %d", nationID), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quotaResponse{NationID: nationID, Remaining: remaining})
}

// serveSearch validates the request, reserves a quota slot before any upstream
// call, runs the search and hands the slot back if the search failed.
func serveSearch[T any](finder Finder[T], quota Quota) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		nationID, err := parseNationID(r)
		if err != nil {
			title := "Invalid Input"
			if errors.Is(err, errMissingNationID) {
				title = "Input Error"
			}
			logger.Debug().Err(err).Msg("Rejected search request")
			writeError(w, http.StatusBadRequest, title, inputMessage(err))
			return
		}

		opts, err := parseSearchOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid Input", inputMessage(err))
			return
		}

		reservation, err := quota.Reserve(r.Context(), nationID)
		if err != nil {
			title := fmt.Sprintf("Error for Nation ID %d", nationID)
			if errors.Is(err, app.ErrRateLimit) {
				title = fmt.Sprintf("Rate Limit Exceeded for Nation ID %d", nationID)
			}
			writeError(w, statusFor(err), title, capitalize(err.Error()))
			return
		}

		logger.Info().
			Str("search", finder.Name()).
			Int("nation_id", nationID).
			Msg("Starting search")

		result, err := finder.Find(r.Context(), nationID, opts)
		if err != nil {
			logger.Error().
				Err(err).
				Str("search", finder.Name()).
				Int("nation_id", nationID).
				Msg("Search failed")
			if releaseErr := quota.Release(context.WithoutCancel(r.Context()), reservation); releaseErr != nil {
				logger.Error().Err(releaseErr).Int("nation_id", nationID).Msg("Failed to release search")
			}
			writeError(w, statusFor(err), fmt.Sprintf("Error for Nation ID %d", nationID), capitalize(err.Error()))
			return
		}

		logger.Info().
			Str("search", finder.Name()).
			Int("targets_found", len(result.Targets)).
			Str("nation_name", result.MyNation.Name).
			Msg("Search completed")

		writeJSON(w, http.StatusOK, searchResponse[T]{
			Targets:     result.Targets,
			SearchTitle: fmt.Sprintf("%s Targets for Nation ID %d", finder.Name(), nationID),
			MyNation:    result.MyNation,
		})
	}
}
