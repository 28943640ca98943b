// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

// Goal is the user's primary fitness objective.
type Goal string

const (
	GoalLoseWeight  Goal = "lose_weight"
	GoalGainMuscle  Goal = "gain_muscle"
	GoalMaintain    Goal = "maintain"
	GoalEndurance   Goal = "endurance"
	GoalFlexibility Goal = "flexibility"
	GoalStrength    Goal = "strength"
)

// Valid reports whether g is one of the known goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalGainMuscle, GoalMaintain, GoalEndurance, GoalFlexibility, GoalStrength:
		return true
	default:
		return false
	}
}

// CalorieMultiplier returns the per-kg calorie target multiplier used by
// content-based calorie matching. A session is considered well matched when
// its calorie burn is close to weight * multiplier.
func (g Goal) CalorieMultiplier() float64 {
	switch g {
	case GoalLoseWeight:
		return 4.5
	case GoalGainMuscle:
		return 3.0
	case GoalEndurance:
		return 6.0
	default:
		return 4.0
	}
}

// ActivityLevel describes self-reported baseline activity.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Ordinal returns the activity level as an integer in [0, 4] for distance
// computations. Unknown levels map to moderate.
func (a ActivityLevel) Ordinal() int {
	switch a {
	case ActivitySedentary:
		return 0
	case ActivityLight:
		return 1
	case ActivityModerate:
		return 2
	case ActivityActive:
		return 3
	case ActivityVeryActive:
		return 4
	default:
		return 2
	}
}

// Difficulty is the difficulty tier of a workout item.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Level returns the tier as an integer in [0, 2]. Unknown tiers map to
// intermediate so a malformed catalog entry is never treated as an extreme.
func (d Difficulty) Level() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return 1
	}
}

// ExperienceLevel is derived from the number of completed sessions.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Level returns the experience level as an integer in [0, 2].
func (e ExperienceLevel) Level() int {
	switch e {
	case ExperienceBeginner:
		return 0
	case ExperienceIntermediate:
		return 1
	case ExperienceAdvanced:
		return 2
	default:
		return 1
	}
}

// RecommendationType classifies why an item was recommended.
type RecommendationType string

const (
	// TypePersonalBest marks items the blended algorithms agree on strongly.
	TypePersonalBest RecommendationType = "personal_best"
	// TypeProgressive marks items one difficulty step above the user.
	TypeProgressive RecommendationType = "progressive"
	// TypeRecovery marks easy re-entry items for inconsistent users.
	TypeRecovery RecommendationType = "recovery"
	// TypeVariety marks items from under-explored categories.
	TypeVariety RecommendationType = "variety"
	// TypeGoalOriented marks items aligned with the user's stated goal.
	TypeGoalOriented RecommendationType = "goal_oriented"
	// TypeChallenge marks strong-fit items for consistent users.
	TypeChallenge RecommendationType = "challenge"
)

// String returns the type identifier.
func (t RecommendationType) String() string {
	return string(t)
}
