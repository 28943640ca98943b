// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package recommend

import (
	"fmt"
	"strings"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/scoring"
)

// maxReasons bounds the supporting-fact list per result.
const maxReasons = 3

// typeLeads are the opening sentences per recommendation type.
var typeLeads = map[domain.RecommendationType]string{
	domain.TypePersonalBest: "Strong overall match for your profile",
	domain.TypeProgressive:  "A step up in difficulty to keep you progressing",
	domain.TypeRecovery:     "An easy re-entry session to rebuild momentum",
	domain.TypeVariety:      "Something different from your recent routine",
	domain.TypeGoalOriented: "Directly aligned with your stated goal",
	domain.TypeChallenge:    "A challenge your consistency has earned",
}

// buildReasoning assembles the explanation: the type lead plus up to two
// supporting facts about category and duration fit.
func buildReasoning(item domain.WorkoutItem, p *domain.Profile, t domain.RecommendationType) string {
	parts := []string{typeLeads[t]}

	if p.PrefersCategory(item.Category) {
		parts = append(parts, fmt.Sprintf("%s is one of your preferred categories", item.Category))
	}
	if p.MaxDurationMinutes > 0 && item.DurationMinutes <= p.MaxDurationMinutes {
		parts = append(parts, fmt.Sprintf("fits within your %d minute limit", p.MaxDurationMinutes))
	}

	return strings.Join(parts, "; ") + "."
}

// buildReasons collects up to three short supporting facts, checked in
// fixed priority order: category preference, difficulty fit, duration fit,
// calorie alignment, diversity contribution.
func buildReasons(item domain.WorkoutItem, p *domain.Profile, s scoring.Scores) []string {
	reasons := make([]string, 0, maxReasons)

	add := func(r string) bool {
		reasons = append(reasons, r)
		return len(reasons) >= maxReasons
	}

	if p.PrefersCategory(item.Category) {
		if add(fmt.Sprintf("matches your %s preference", item.Category)) {
			return reasons
		}
	}

	gap := item.Difficulty.Level() - p.Experience().Level()
	if gap == 0 || gap == 1 {
		if add(fmt.Sprintf("%s difficulty suits your %s level", item.Difficulty, p.Experience())) {
			return reasons
		}
	}

	if p.MaxDurationMinutes > 0 && item.DurationMinutes <= p.MaxDurationMinutes {
		if add(fmt.Sprintf("%d minutes fits your schedule", item.DurationMinutes)) {
			return reasons
		}
	}

	target := p.WeightKG * p.Goal.CalorieMultiplier()
	if target > 0 {
		deviation := float64(item.Calories) - target
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation/target <= 0.2 {
			if add(fmt.Sprintf("around %d kcal supports your goal", item.Calories)) {
				return reasons
			}
		}
	}

	if s.Diversity > 0.8 {
		add("adds variety to your recent training")
	}

	return reasons
}
