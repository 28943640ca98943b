// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/scoring"
)

// goalAlignmentBonus is added to the content score of every goal-aligned
// candidate before picking the winner.
const goalAlignmentBonus = 0.3

// GenerateGoalFocused restricts the catalog to items aligned with the
// explicit goal and returns the single best candidate by content score plus
// an alignment bonus. Returns nil when no item qualifies.
func (o *Orchestrator) GenerateGoalFocused(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem, goal domain.Goal) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := o.now()

	var best *domain.Result
	var bestScore float64

	for _, item := range catalog {
		if !alignedWithGoal(item, p, goal) {
			continue
		}

		score := scoring.Clamp(scoring.ContentBased(item, p, now) + goalAlignmentBonus)
		if best != nil && score <= bestScore {
			continue
		}

		scores := scoring.All(item, p, now)
		r := domain.Result{
			ItemID:      item.ID,
			ItemName:    item.Name,
			Confidence:  confidenceScore(scores, p),
			Reasoning:   fmt.Sprintf("Best available match for your %s goal.", goal),
			Type:        domain.TypeGoalOriented,
			Reasons:     buildReasons(item, p, scores),
			Scores:      scores.Map(),
			GeneratedAt: now,
			Priority:    priorityFor(score),
			Metadata: domain.ResultMetadata{
				Category:        item.Category,
				Difficulty:      item.Difficulty,
				DurationMinutes: item.DurationMinutes,
				FinalScore:      score,
				Experience:      p.Experience(),
			},
		}
		best = &r
		bestScore = score
	}

	return best, nil
}

// alignedWithGoal mirrors the goal-oriented classification rules for an
// explicit goal rather than the profile's own.
func alignedWithGoal(item domain.WorkoutItem, p *domain.Profile, goal domain.Goal) bool {
	category := strings.ToLower(item.Category)
	switch goal {
	case domain.GoalLoseWeight:
		return float64(item.Calories) > p.WeightKG*4
	case domain.GoalGainMuscle, domain.GoalStrength:
		return category == "strength"
	case domain.GoalEndurance:
		return category == "cardio"
	case domain.GoalFlexibility:
		return category == "yoga" || category == "flexibility" || category == "pilates"
	case domain.GoalMaintain:
		return p.MaxDurationMinutes <= 0 || item.DurationMinutes <= p.MaxDurationMinutes
	default:
		return false
	}
}
