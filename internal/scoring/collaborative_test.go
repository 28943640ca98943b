// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"testing"

	"github.com/lfbraga/fitrec/internal/domain"
)

func TestCollaborativeDeterministic(t *testing.T) {
	p := testProfile()
	item := testItem()

	first := Collaborative(item, p)
	for i := 0; i < 10; i++ {
		if got := Collaborative(item, p); got != first {
			t.Fatalf("run %d returned %v, first run returned %v", i, got, first)
		}
	}
}

func TestCollaborativeRange(t *testing.T) {
	items := []domain.WorkoutItem{
		testItem(),
		{ID: "x", Category: "HIIT", Difficulty: domain.DifficultyAdvanced},
		{},
	}
	profiles := []*domain.Profile{
		testProfile(),
		{},
		{Age: 90, WeightKG: 40, HeightM: 1.5, Goal: domain.GoalFlexibility},
	}

	for _, item := range items {
		for _, p := range profiles {
			got := Collaborative(item, p)
			if got < 0 || got > 1 {
				t.Errorf("Collaborative(%q) = %v, want in [0, 1]", item.ID, got)
			}
		}
	}
}

func TestCollaborativeVariesByItem(t *testing.T) {
	p := testProfile()

	a := Collaborative(domain.WorkoutItem{ID: "alpha", Category: "Rowing"}, p)
	b := Collaborative(domain.WorkoutItem{ID: "bravo", Category: "Rowing"}, p)

	if a == b {
		t.Errorf("different item ids produced identical score %v", a)
	}
}

func TestCollaborativePrefersMatchingCategory(t *testing.T) {
	p := testProfile() // prefers Strength

	matched := Collaborative(domain.WorkoutItem{ID: "same", Category: "Strength"}, p)
	unmatched := Collaborative(domain.WorkoutItem{ID: "same", Category: "Rowing"}, p)

	if matched <= unmatched {
		t.Errorf("preferred category scored %v, other %v; want strictly higher", matched, unmatched)
	}
}

func TestDeriveNeighborsShape(t *testing.T) {
	p := testProfile()
	neighbors := deriveNeighbors(p)

	if len(neighbors) != neighborCount {
		t.Fatalf("got %d neighbors, want %d", len(neighbors), neighborCount)
	}

	ownGoal, altGoal := 0, 0
	for _, n := range neighbors {
		if n.goal == p.Goal {
			ownGoal++
		} else {
			altGoal++
		}
	}
	if ownGoal != 3 || altGoal != 2 {
		t.Errorf("goal split %d/%d, want 3 own / 2 alternate", ownGoal, altGoal)
	}
}
