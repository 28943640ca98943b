// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"math"
	"time"

	"github.com/lfbraga/fitrec/internal/domain"
)

// Fixed sub-factor weights for the content-based score. They sum to 1.0 so
// the weighted sum stays in [0, 1] without renormalization.
const (
	weightCategoryMatch   = 0.25
	weightDifficultyMatch = 0.20
	weightDurationMatch   = 0.15
	weightCalorieMatch    = 0.15
	weightCategoryHistory = 0.15
	weightFrequencyMatch  = 0.10
)

// ContentBased scores an item purely from its own attributes matched against
// the user's stated preferences and history distribution.
//
// The score is a weighted sum of six sub-factors: category match (0.25),
// difficulty match (0.20), duration match (0.15), calorie match (0.15),
// category-history match (0.15), and frequency match (0.10).
func ContentBased(item domain.WorkoutItem, p *domain.Profile, now time.Time) float64 {
	score := weightCategoryMatch*categoryMatch(item, p) +
		weightDifficultyMatch*difficultyMatch(item, p) +
		weightDurationMatch*durationMatch(item, p) +
		weightCalorieMatch*calorieMatch(item, p) +
		weightCategoryHistory*categoryHistoryMatch(item, p) +
		weightFrequencyMatch*p.Consistency(now)

	return Clamp(score)
}

// categoryMatch is binary: 1 when the item category is one of the user's
// preferred categories.
func categoryMatch(item domain.WorkoutItem, p *domain.Profile) float64 {
	if p.PrefersCategory(item.Category) {
		return 1
	}
	return 0
}

// difficultyMatch scores the absolute gap between the item's difficulty tier
// and the user's experience level.
func difficultyMatch(item domain.WorkoutItem, p *domain.Profile) float64 {
	gap := item.Difficulty.Level() - p.Experience().Level()
	if gap < 0 {
		gap = -gap
	}
	switch gap {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.4
	default:
		return 0.1
	}
}

// durationMatch rewards sessions close to 75% of the user's maximum tolerable
// duration. Inside the maximum, the score decays with distance from that
// sweet spot; above the maximum, it decays with the excess fraction.
func durationMatch(item domain.WorkoutItem, p *domain.Profile) float64 {
	if p.MaxDurationMinutes <= 0 {
		return 0.5
	}

	max := float64(p.MaxDurationMinutes)
	dur := float64(item.DurationMinutes)

	if dur <= max {
		ideal := 0.75 * max
		return Clamp(1 - math.Abs(dur-ideal)/ideal)
	}
	return Clamp(1 - (dur-max)/max)
}

// calorieMatch compares the item's estimated burn against a goal-derived
// target of weight * multiplier.
func calorieMatch(item domain.WorkoutItem, p *domain.Profile) float64 {
	target := p.WeightKG * p.Goal.CalorieMultiplier()
	if target <= 0 {
		return 0.5
	}
	return Clamp(1 - math.Abs(float64(item.Calories)-target)/target)
}

// categoryHistoryMatch rewards under-explored categories. A category already
// dominating the user's completed-session distribution is penalized so the
// content score does not reinforce a monoculture.
func categoryHistoryMatch(item domain.WorkoutItem, p *domain.Profile) float64 {
	share := p.CategoryShare(item.Category)
	switch {
	case share > 0.6:
		return 0.1
	case share > 0.4:
		return 0.4
	case share > 0.2:
		return 0.7
	default:
		return 1.0
	}
}
