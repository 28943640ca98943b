// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/lfbraga/fitrec/internal/engine"
	"github.com/lfbraga/fitrec/internal/store"
)

// errorResponse is the JSON body for all error answers.
type errorResponse struct {
	Error string `json:"error"`
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rt.logger.Warn().Err(err).Msg("failed to encode response")
	}
}

func (rt *Router) writeError(w http.ResponseWriter, status int, msg string) {
	rt.writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps core error taxonomy onto HTTP statuses.
func (rt *Router) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNotInitialized):
		rt.writeError(w, http.StatusConflict, "engine not initialized")
	case errors.Is(err, engine.ErrItemNotFound):
		rt.writeError(w, http.StatusNotFound, "item not found in catalog")
	case errors.Is(err, engine.ErrRecommendationNotFound):
		rt.writeError(w, http.StatusNotFound, "recommendation not found in current cache")
	case errors.Is(err, store.ErrNotFound):
		rt.writeError(w, http.StatusNotFound, "not found")
	default:
		rt.logger.Error().Err(err).Msg("request failed")
		rt.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
