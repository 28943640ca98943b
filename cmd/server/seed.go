// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/store"
)

// demoUserID identifies the built-in demo profile. A real deployment
// replaces it through PUT /api/v1/profile.
const demoUserID = "demo-user"

// bootstrapData loads the stored profile for the demo user when present,
// otherwise returns the built-in demo profile. The catalog is always the
// built-in set; items arrive via POST /api/v1/items at runtime.
func bootstrapData(ctx context.Context, st *store.Store, logger zerolog.Logger) (*domain.Profile, []domain.WorkoutItem) {
	catalog := demoCatalog()

	profile, err := st.LoadProfile(ctx, demoUserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn().Err(err).Msg("failed to load stored profile, using demo profile")
		}
		profile = demoProfile()
	} else {
		logger.Info().Str("user_id", profile.UserID).Msg("loaded stored profile")
	}

	return profile, catalog
}

func demoProfile() *domain.Profile {
	now := time.Now()
	return &domain.Profile{
		UserID:              demoUserID,
		Age:                 29,
		WeightKG:            74,
		HeightM:             1.76,
		Goal:                domain.GoalLoseWeight,
		ActivityLevel:       domain.ActivityModerate,
		PreferredCategories: []string{"Strength", "Cardio"},
		MaxDurationMinutes:  60,
		InjuryRisk:          0.2,
		PreferenceWeights: map[string]float64{
			"Strength": 0.6,
			"Cardio":   0.5,
		},
		CompletedSessions:   14,
		CompletedCategories: []string{"Strength", "Cardio", "Strength", "Yoga", "Cardio"},
		History: []domain.HistoryEntry{
			{
				ItemID:          "full-body-first",
				Category:        "Strength",
				CompletedAt:     now.AddDate(0, 0, -9),
				DurationMinutes: 25,
				Rating:          4,
				Calories:        180,
				Difficulty:      domain.DifficultyBeginner,
			},
			{
				ItemID:          "basic-cardio-burn",
				Category:        "Cardio",
				CompletedAt:     now.AddDate(0, 0, -6),
				DurationMinutes: 20,
				Rating:          3.5,
				Calories:        210,
				Difficulty:      domain.DifficultyBeginner,
			},
			{
				ItemID:          "push-day-chest-shoulders",
				Category:        "Strength",
				CompletedAt:     now.AddDate(0, 0, -4),
				DurationMinutes: 40,
				Rating:          4.5,
				Calories:        290,
				Difficulty:      domain.DifficultyIntermediate,
			},
			{
				ItemID:          "morning-yoga-flow",
				Category:        "Yoga",
				CompletedAt:     now.AddDate(0, 0, -2),
				DurationMinutes: 30,
				Rating:          4,
				Calories:        120,
				Difficulty:      domain.DifficultyBeginner,
			},
		},
		AverageRating: 4.0,
	}
}

// demoCatalog is a compact bodyweight-and-dumbbell program spread across
// categories and difficulty tiers.
func demoCatalog() []domain.WorkoutItem {
	return []domain.WorkoutItem{
		{
			ID: "full-body-first", Name: "First Workout - Full Body",
			Category: "Strength", Difficulty: domain.DifficultyBeginner,
			DurationMinutes: 25, Calories: 180,
			MuscleGroups: []string{"chest", "legs", "core"},
			Intensity:    0.4,
		},
		{
			ID: "basic-cardio-burn", Name: "Basic Cardio - Calorie Burn",
			Category: "Cardio", Difficulty: domain.DifficultyBeginner,
			DurationMinutes: 20, Calories: 220,
			MuscleGroups: []string{"legs", "core"},
			Intensity:    0.5,
		},
		{
			ID: "bodyweight-strength", Name: "Basic Strength - No Weights",
			Category: "Strength", Difficulty: domain.DifficultyBeginner,
			DurationMinutes: 30, Calories: 200,
			MuscleGroups: []string{"chest", "legs", "core", "back"},
			Intensity:    0.45,
		},
		{
			ID: "push-day-chest-shoulders", Name: "Push Day - Chest and Shoulders",
			Category: "Strength", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 40, Calories: 290,
			MuscleGroups: []string{"chest", "shoulders", "triceps"},
			Equipment:    []string{"dumbbells"},
			Intensity:    0.6,
		},
		{
			ID: "pull-day-back-biceps", Name: "Pull Day - Back and Biceps",
			Category: "Strength", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 40, Calories: 280,
			MuscleGroups: []string{"back", "biceps"},
			Equipment:    []string{"dumbbells"},
			Intensity:    0.6,
		},
		{
			ID: "leg-day-volume", Name: "Leg Day - Strength and Volume",
			Category: "Strength", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 45, Calories: 340,
			MuscleGroups: []string{"quads", "glutes", "calves"},
			Intensity:    0.65,
		},
		{
			ID: "hiit-intermediate", Name: "HIIT - High Intensity Intervals",
			Category: "HIIT", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 25, Calories: 330,
			MuscleGroups: []string{"full body"},
			Intensity:    0.85,
		},
		{
			ID: "core-power", Name: "Core Power - Strong Midsection",
			Category: "Core", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 25, Calories: 170,
			MuscleGroups: []string{"abs", "obliques", "lower back"},
			Intensity:    0.55,
		},
		{
			ID: "steady-state-run", Name: "Steady State Run",
			Category: "Cardio", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 45, Calories: 420,
			MuscleGroups: []string{"legs"},
			Intensity:    0.6,
		},
		{
			ID: "morning-yoga-flow", Name: "Morning Yoga Flow",
			Category: "Yoga", Difficulty: domain.DifficultyBeginner,
			DurationMinutes: 30, Calories: 120,
			MuscleGroups: []string{"full body"},
			Equipment:    []string{"mat"},
			Intensity:    0.3,
		},
		{
			ID: "deep-stretch-session", Name: "Deep Stretch Session",
			Category: "Flexibility", Difficulty: domain.DifficultyBeginner,
			DurationMinutes: 20, Calories: 80,
			MuscleGroups: []string{"hamstrings", "hips", "shoulders"},
			Equipment:    []string{"mat"},
			Intensity:    0.25,
		},
		{
			ID: "advanced-hiit-circuit", Name: "Advanced HIIT Circuit",
			Category: "HIIT", Difficulty: domain.DifficultyAdvanced,
			DurationMinutes: 30, Calories: 410,
			MuscleGroups: []string{"full body"},
			Intensity:    0.95,
		},
		{
			ID: "heavy-strength-split", Name: "Heavy Strength Split",
			Category: "Strength", Difficulty: domain.DifficultyAdvanced,
			DurationMinutes: 55, Calories: 380,
			MuscleGroups: []string{"chest", "back", "legs"},
			Equipment:    []string{"dumbbells", "bench"},
			Intensity:    0.8,
		},
		{
			ID: "pilates-control", Name: "Pilates Control",
			Category: "Pilates", Difficulty: domain.DifficultyIntermediate,
			DurationMinutes: 35, Calories: 150,
			MuscleGroups: []string{"core", "glutes"},
			Equipment:    []string{"mat"},
			Intensity:    0.4,
		},
	}
}
