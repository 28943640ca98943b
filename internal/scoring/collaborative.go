// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/lfbraga/fitrec/internal/domain"
)

// neighborCount is the number of synthetic neighbor profiles derived from
// the user for the collaborative simulation.
const neighborCount = 5

// neighbor is a synthetic similar-user profile. Neighbors are derived
// deterministically from the user so repeated calls score identically.
type neighbor struct {
	id            string
	age           int
	weightKG      float64
	heightM       float64
	goal          domain.Goal
	activity      domain.ActivityLevel
	preferred     []string
	difficultyFit domain.Difficulty
}

// Collaborative estimates how similar users would rate the item. It derives
// five deterministic neighbor profiles from the user, simulates each
// neighbor's rating for the item, and returns the similarity-weighted mean
// rating normalized to [0, 1].
//
// This is a heuristic simulation over synthetic neighbors, not a trained
// model. A neutral 0.5 is returned when no neighbors can be derived.
func Collaborative(item domain.WorkoutItem, p *domain.Profile) float64 {
	neighbors := deriveNeighbors(p)
	if len(neighbors) == 0 {
		return 0.5
	}

	var weightedSum, similaritySum float64
	for i := range neighbors {
		sim := similarity(p, &neighbors[i])
		rating := simulateRating(item, &neighbors[i])
		weightedSum += sim * rating
		similaritySum += sim
	}
	if similaritySum == 0 {
		return 0.5
	}

	mean := weightedSum / similaritySum
	return Clamp((mean - 1) / 4)
}

// deriveNeighbors builds the synthetic neighborhood: small age and weight
// offsets around the user, goals alternating between the user's own and a
// complementary one.
func deriveNeighbors(p *domain.Profile) []neighbor {
	ageOffsets := [neighborCount]int{-4, -2, 0, 2, 4}
	weightOffsets := [neighborCount]float64{-6, -3, 0, 3, 6}

	alt := alternateGoal(p.Goal)
	neighbors := make([]neighbor, 0, neighborCount)
	for i := 0; i < neighborCount; i++ {
		goal := p.Goal
		if i%2 == 1 {
			goal = alt
		}
		neighbors = append(neighbors, neighbor{
			id:            fmt.Sprintf("%s-n%d", p.UserID, i),
			age:           p.Age + ageOffsets[i],
			weightKG:      p.WeightKG + weightOffsets[i],
			heightM:       p.HeightM,
			goal:          goal,
			activity:      p.ActivityLevel,
			preferred:     p.PreferredCategories,
			difficultyFit: experienceDifficulty(p.Experience()),
		})
	}
	return neighbors
}

// alternateGoal pairs each goal with a plausible complementary objective so
// half of the neighborhood pulls the rating toward a different preference.
func alternateGoal(g domain.Goal) domain.Goal {
	switch g {
	case domain.GoalLoseWeight:
		return domain.GoalEndurance
	case domain.GoalGainMuscle:
		return domain.GoalStrength
	case domain.GoalEndurance:
		return domain.GoalLoseWeight
	case domain.GoalStrength:
		return domain.GoalGainMuscle
	case domain.GoalFlexibility:
		return domain.GoalMaintain
	default:
		return domain.GoalLoseWeight
	}
}

// experienceDifficulty maps an experience level onto the difficulty tier a
// neighbor at that level would rate highest.
func experienceDifficulty(e domain.ExperienceLevel) domain.Difficulty {
	switch e {
	case domain.ExperienceBeginner:
		return domain.DifficultyBeginner
	case domain.ExperienceAdvanced:
		return domain.DifficultyAdvanced
	default:
		return domain.DifficultyIntermediate
	}
}

// simulateRating produces a deterministic rating in [1, 5] seeded by the
// (item, neighbor) pair, nudged upward when the item matches the neighbor's
// preferred categories or difficulty tier.
func simulateRating(item domain.WorkoutItem, n *neighbor) float64 {
	h := fnv.New32a()
	h.Write([]byte(item.ID))
	h.Write([]byte{0})
	h.Write([]byte(n.id))

	base := 1 + 4*float64(h.Sum32()%1000)/999

	for _, c := range n.preferred {
		if c == item.Category {
			base += 0.5
			break
		}
	}
	if item.Difficulty == n.difficultyFit {
		base += 0.3
	}

	if base > 5 {
		base = 5
	}
	return base
}

// similarity is the mean of four normalized closeness terms between the user
// and a neighbor: age, goal equality, activity-level distance, and BMI
// distance. Each term lies in [0, 1].
func similarity(p *domain.Profile, n *neighbor) float64 {
	ageTerm := Clamp(1 - math.Abs(float64(p.Age-n.age))/50)

	goalTerm := 0.0
	if p.Goal == n.goal {
		goalTerm = 1.0
	}

	activityGap := float64(p.ActivityLevel.Ordinal() - n.activity.Ordinal())
	activityTerm := Clamp(1 - math.Abs(activityGap)/4)

	bmiTerm := Clamp(1 - math.Abs(p.BMI()-neighborBMI(n))/10)

	return (ageTerm + goalTerm + activityTerm + bmiTerm) / 4
}

func neighborBMI(n *neighbor) float64 {
	if n.heightM <= 0 {
		return 0
	}
	return n.weightKG / (n.heightM * n.heightM)
}
