// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"github.com/lfbraga/fitrec/internal/domain"
)

// Progression scores the difficulty step between the item and the user's
// experience level. One tier above is the ideal stretch; matching the
// current tier is solid; easier items score progressively lower.
func Progression(item domain.WorkoutItem, p *domain.Profile) float64 {
	delta := item.Difficulty.Level() - p.Experience().Level()
	switch {
	case delta == 0:
		return 0.8
	case delta == 1:
		return 1.0
	case delta == -1:
		return 0.6
	case delta < -1:
		return 0.3
	default:
		return 0.4
	}
}
