// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"time"

	"github.com/lfbraga/fitrec/internal/domain"
)

// historyTrustThreshold is the completed-session count above which the
// collaborative signal is weighted more heavily than the content signal.
const historyTrustThreshold = 20

// Hybrid blends the content-based and collaborative scores. Users with a
// short history lean on content matching (0.7 / 0.3); once more than 20
// sessions are completed the collaborative signal dominates (0.4 / 0.6).
func Hybrid(item domain.WorkoutItem, p *domain.Profile, now time.Time) float64 {
	return blend(ContentBased(item, p, now), Collaborative(item, p), p.CompletedSessions)
}

// blend combines the two signals with the history-gated weights.
func blend(content, collaborative float64, completedSessions int) float64 {
	contentWeight, collabWeight := 0.7, 0.3
	if completedSessions > historyTrustThreshold {
		contentWeight, collabWeight = 0.4, 0.6
	}
	return Clamp(contentWeight*content + collabWeight*collaborative)
}
