// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/engine"
)

// historyDefaultDays is the default lookback for the history endpoint.
const historyDefaultDays = 30

func (rt *Router) handleHealthz(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetRecommendations serves GET /api/v1/recommendations with optional
// max_count and force_refresh query parameters.
func (rt *Router) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	maxCount := 0
	if raw := r.URL.Query().Get("max_count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			rt.writeError(w, http.StatusBadRequest, "max_count must be a positive integer")
			return
		}
		maxCount = n
	}
	forceRefresh := r.URL.Query().Get("force_refresh") == "true"

	list, err := rt.engine.GetRecommendations(r.Context(), maxCount, forceRefresh)
	if err != nil {
		rt.writeEngineError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, list)
}

// handleGetGoalFocused serves GET /api/v1/recommendations/goal/{goal}.
func (rt *Router) handleGetGoalFocused(w http.ResponseWriter, r *http.Request) {
	goal := domain.Goal(chi.URLParam(r, "goal"))
	if !goal.Valid() {
		rt.writeError(w, http.StatusBadRequest, "unknown goal")
		return
	}

	result, err := rt.engine.GetGoalFocused(r.Context(), goal)
	if err != nil {
		rt.writeEngineError(w, err)
		return
	}
	if result == nil {
		rt.writeError(w, http.StatusNotFound, "no item matches this goal")
		return
	}
	rt.writeJSON(w, http.StatusOK, result)
}

// feedbackRequest is the POST /api/v1/feedback body.
type feedbackRequest struct {
	ItemID    string  `json:"item_id" validate:"required"`
	Rating    float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Completed bool    `json:"completed"`
	Comments  string  `json:"comments" validate:"max=2000"`
}

type feedbackResponse struct {
	Quality float64 `json:"quality"`
}

func (rt *Router) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := rt.validate.Struct(&req); err != nil {
		rt.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quality, err := rt.engine.RecordFeedback(engine.Feedback{
		ItemID:    req.ItemID,
		Rating:    req.Rating,
		Completed: req.Completed,
		Comments:  req.Comments,
	})
	if err != nil {
		rt.writeEngineError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, feedbackResponse{Quality: quality})
}

func (rt *Router) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		rt.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if profile.UserID == "" {
		rt.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if !profile.Goal.Valid() {
		rt.writeError(w, http.StatusBadRequest, "unknown goal")
		return
	}

	if err := rt.engine.UpdateProfile(r.Context(), &profile); err != nil {
		rt.writeEngineError(w, err)
		return
	}

	if rt.archive != nil {
		if err := rt.archive.SaveProfile(r.Context(), &profile); err != nil {
			rt.logger.Warn().Err(err).Str("user_id", profile.UserID).Msg("failed to persist profile")
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleAddItems(w http.ResponseWriter, r *http.Request) {
	var items []domain.WorkoutItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		rt.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(items) == 0 {
		rt.writeError(w, http.StatusBadRequest, "at least one item is required")
		return
	}
	for i := range items {
		if items[i].ID == "" {
			rt.writeError(w, http.StatusBadRequest, "every item needs an id")
			return
		}
	}

	if err := rt.engine.AddItems(r.Context(), items); err != nil {
		rt.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleLearning(w http.ResponseWriter, r *http.Request) {
	if err := rt.engine.PerformLearning(r.Context()); err != nil {
		rt.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleStats(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, http.StatusOK, rt.engine.Stats())
}

func (rt *Router) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, http.StatusOK, rt.engine.RunDiagnostics(r.Context()))
}

// handleHistory serves GET /api/v1/history?user_id=&days= from the archive.
func (rt *Router) handleHistory(w http.ResponseWriter, r *http.Request) {
	if rt.archive == nil {
		rt.writeError(w, http.StatusNotFound, "history archive not configured")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rt.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	days := historyDefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			rt.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	since := time.Now().AddDate(0, 0, -days)
	lists, err := rt.archive.ListHistory(r.Context(), userID, since)
	if err != nil {
		rt.writeEngineError(w, err)
		return
	}
	if lists == nil {
		lists = []domain.RecommendationList{}
	}
	rt.writeJSON(w, http.StatusOK, lists)
}
