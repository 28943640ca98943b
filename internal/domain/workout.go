// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

// WorkoutItem is one entry of the workout catalog. Items are supplied by an
// external catalog service and are read-only to the core.
type WorkoutItem struct {
	// ID is the unique catalog identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category is the workout category (Strength, Cardio, HIIT, Yoga, ...).
	Category string `json:"category"`

	// Difficulty is the difficulty tier.
	Difficulty Difficulty `json:"difficulty"`

	// DurationMinutes is the planned session length.
	DurationMinutes int `json:"duration_minutes"`

	// Calories is the estimated calorie burn for the session.
	Calories int `json:"calories"`

	// MuscleGroups lists the primary muscle groups worked.
	MuscleGroups []string `json:"muscle_groups"`

	// Equipment lists required equipment, empty for bodyweight items.
	Equipment []string `json:"equipment,omitempty"`

	// Intensity is a scalar in [0, 1].
	Intensity float64 `json:"intensity"`
}
