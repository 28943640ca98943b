// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"time"

	"github.com/lfbraga/fitrec/internal/domain"
)

// diversityWindow is the trailing period considered "recent" for variety.
const diversityWindow = 14 * 24 * time.Hour

// noHistoryDiversity is the default when the user has no recent sessions.
// Sparse data favors exploration rather than a neutral score.
const noHistoryDiversity = 0.8

// Diversity scores how under-represented the item's category is in the
// user's trailing 14 days of completed sessions: 1 minus the category's
// relative frequency.
func Diversity(item domain.WorkoutItem, p *domain.Profile, now time.Time) float64 {
	recent := p.RecentHistory(now, diversityWindow)
	if len(recent) == 0 {
		return noHistoryDiversity
	}

	n := 0
	for i := range recent {
		if recent[i].Category == item.Category {
			n++
		}
	}
	return Clamp(1 - float64(n)/float64(len(recent)))
}
