// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package recommend

import (
	"math"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/scoring"
)

// EvaluateQuality scores how well a recommendation worked out, in [0, 1]:
// 0.4 * normalized rating + 0.3 * completion + 0.1 * type bonus, minus a
// 0.2-weighted penalty for the gap between predicted confidence and the
// observed rating.
func EvaluateQuality(result *domain.Result, rating float64, completed bool) float64 {
	normalized := rating / 5

	completedTerm := 0.0
	if completed {
		completedTerm = 1.0
	}

	calibrationGap := math.Abs(result.Confidence - normalized)

	q := 0.4*normalized +
		0.3*completedTerm -
		0.2*calibrationGap +
		0.1*typeSuccessBonus(result.Type, rating)

	return scoring.Clamp(q)
}

// typeSuccessBonus rewards a type when the observed rating clears its
// threshold. Progressive recommendations are penalized when they miss:
// recommending a stretch the user disliked is worse than a neutral pick.
func typeSuccessBonus(t domain.RecommendationType, rating float64) float64 {
	switch t {
	case domain.TypePersonalBest:
		if rating >= 4.0 {
			return 0.2
		}
	case domain.TypeProgressive:
		if rating >= 3.5 {
			return 0.2
		}
		return -0.2
	case domain.TypeVariety:
		if rating >= 3.0 {
			return 0.2
		}
	}
	return 0
}
