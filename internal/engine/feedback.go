// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package engine

import (
	"fmt"
	"time"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/metrics"
	"github.com/lfbraga/fitrec/internal/recommend"
)

// preferenceNudge is added to a category's preference weight when the user
// rates it 4.0 or higher.
const preferenceNudge = 0.1

// Feedback is one user reaction to a recommended item.
type Feedback struct {
	ItemID    string
	Rating    float64
	Completed bool
	Comments  string
}

// RecordFeedback evaluates the feedback against the cached recommendation,
// folds it into a new profile snapshot, and invalidates the cache so the
// next generation reflects the update. Returns the evaluated quality score.
//
// The item must exist in the catalog and in the currently cached list;
// feedback on an item from an evicted list cannot be scored against its
// original confidence and is rejected.
func (e *Engine) RecordFeedback(f Feedback) (float64, error) {
	if f.Rating < 1 || f.Rating > 5 {
		return 0, fmt.Errorf("record feedback: rating %.1f out of range [1, 5]", f.Rating)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return 0, ErrNotInitialized
	}

	item, ok := e.findItemLocked(f.ItemID)
	if !ok {
		metrics.FeedbackReceived.WithLabelValues("item_not_found").Inc()
		return 0, fmt.Errorf("record feedback for %q: %w", f.ItemID, ErrItemNotFound)
	}

	var rec *domain.Result
	if e.cached != nil {
		rec = e.cached.Find(f.ItemID)
	}
	if rec == nil {
		metrics.FeedbackReceived.WithLabelValues("recommendation_not_found").Inc()
		return 0, fmt.Errorf("record feedback for %q: %w", f.ItemID, ErrRecommendationNotFound)
	}

	quality := recommend.EvaluateQuality(rec, f.Rating, f.Completed)

	e.profile = e.applyFeedbackLocked(item, f)

	e.cached = nil
	e.cachedAt = time.Time{}
	e.epoch.Add(1)
	metrics.CacheInvalidations.WithLabelValues("feedback").Inc()
	metrics.FeedbackReceived.WithLabelValues("accepted").Inc()
	metrics.FeedbackQuality.Observe(quality)

	e.logger.Info().
		Str("item_id", f.ItemID).
		Float64("rating", f.Rating).
		Bool("completed", f.Completed).
		Float64("quality", quality).
		Msg("feedback recorded")

	return quality, nil
}

func (e *Engine) findItemLocked(itemID string) (domain.WorkoutItem, bool) {
	for i := range e.catalog {
		if e.catalog[i].ID == itemID {
			return e.catalog[i], true
		}
	}
	return domain.WorkoutItem{}, false
}

// applyFeedbackLocked builds the successor profile snapshot: a new history
// entry, updated aggregates, and a preference nudge for well-rated
// categories. The held profile is never mutated in place.
func (e *Engine) applyFeedbackLocked(item domain.WorkoutItem, f Feedback) *domain.Profile {
	next := e.profile.Clone()
	now := e.now()

	next.History = append(next.History, domain.HistoryEntry{
		ItemID:          item.ID,
		Category:        item.Category,
		CompletedAt:     now,
		DurationMinutes: item.DurationMinutes,
		Rating:          f.Rating,
		Calories:        item.Calories,
		Difficulty:      item.Difficulty,
	})
	next.CompletedCategories = append(next.CompletedCategories, item.Category)

	var sum float64
	for i := range next.History {
		sum += next.History[i].Rating
	}
	next.AverageRating = sum / float64(len(next.History))

	if f.Completed {
		next.CompletedSessions++
	}

	if f.Rating >= 4.0 {
		if next.PreferenceWeights == nil {
			next.PreferenceWeights = make(map[string]float64)
		}
		w := next.PreferenceWeights[item.Category] + preferenceNudge
		if w > 1 {
			w = 1
		}
		next.PreferenceWeights[item.Category] = w
	}

	return next
}
