// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestBMI(t *testing.T) {
	p := &Profile{WeightKG: 75, HeightM: 1.75}
	if got, want := p.BMI(), 75/(1.75*1.75); math.Abs(got-want) > 1e-12 {
		t.Errorf("BMI() = %v, want %v", got, want)
	}

	zero := &Profile{WeightKG: 75}
	if got := zero.BMI(); got != 0 {
		t.Errorf("BMI with zero height = %v, want 0", got)
	}
}

func TestExperienceThresholds(t *testing.T) {
	tests := []struct {
		sessions int
		want     ExperienceLevel
	}{
		{0, ExperienceBeginner},
		{9, ExperienceBeginner},
		{10, ExperienceIntermediate},
		{49, ExperienceIntermediate},
		{50, ExperienceAdvanced},
		{500, ExperienceAdvanced},
	}

	for _, tt := range tests {
		p := &Profile{CompletedSessions: tt.sessions}
		if got := p.Experience(); got != tt.want {
			t.Errorf("Experience() with %d sessions = %s, want %s", tt.sessions, got, tt.want)
		}
	}
}

func TestConsistency(t *testing.T) {
	empty := &Profile{}
	if got := empty.Consistency(testNow); got != 0 {
		t.Errorf("no history = %v, want 0", got)
	}

	p := &Profile{}
	for d := 1; d <= 15; d++ {
		p.History = append(p.History, HistoryEntry{
			CompletedAt: testNow.AddDate(0, 0, -d),
		})
	}
	if got, want := p.Consistency(testNow), 0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("15 distinct days = %v, want %v", got, want)
	}
}

func TestConsistencyDistinctDays(t *testing.T) {
	p := &Profile{}
	day := testNow.AddDate(0, 0, -2)
	for i := 0; i < 5; i++ {
		p.History = append(p.History, HistoryEntry{
			CompletedAt: day.Add(time.Duration(i) * time.Hour),
		})
	}

	if got, want := p.Consistency(testNow), 1.0/30; math.Abs(got-want) > 1e-12 {
		t.Errorf("five sessions in one day = %v, want %v", got, want)
	}
}

func TestConsistencyIgnoresOldSessions(t *testing.T) {
	p := &Profile{
		History: []HistoryEntry{
			{CompletedAt: testNow.AddDate(0, 0, -45)},
			{CompletedAt: testNow.AddDate(0, 0, -60)},
		},
	}
	if got := p.Consistency(testNow); got != 0 {
		t.Errorf("only stale sessions = %v, want 0", got)
	}
}

func TestCategoryShare(t *testing.T) {
	p := &Profile{CompletedCategories: []string{"Cardio", "Cardio", "Strength", "Yoga"}}

	if got := p.CategoryShare("Cardio"); got != 0.5 {
		t.Errorf("CategoryShare(Cardio) = %v, want 0.5", got)
	}
	if got := p.CategoryShare("HIIT"); got != 0 {
		t.Errorf("CategoryShare(HIIT) = %v, want 0", got)
	}

	empty := &Profile{}
	if got := empty.CategoryShare("Cardio"); got != 0 {
		t.Errorf("empty CategoryShare = %v, want 0", got)
	}
}

func TestRecentHistoryWindow(t *testing.T) {
	p := &Profile{
		History: []HistoryEntry{
			{ItemID: "old", CompletedAt: testNow.AddDate(0, 0, -20)},
			{ItemID: "recent", CompletedAt: testNow.AddDate(0, 0, -3)},
			{ItemID: "future", CompletedAt: testNow.AddDate(0, 0, 1)},
		},
	}

	recent := p.RecentHistory(testNow, 14*24*time.Hour)
	if len(recent) != 1 || recent[0].ItemID != "recent" {
		t.Fatalf("RecentHistory = %v, want only the entry from 3 days ago", recent)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := &Profile{
		UserID:              "u1",
		PreferredCategories: []string{"Strength"},
		CompletedCategories: []string{"Cardio"},
		PreferenceWeights:   map[string]float64{"Strength": 0.5},
		History:             []HistoryEntry{{ItemID: "w1"}},
	}

	cp := p.Clone()
	cp.PreferredCategories[0] = "changed"
	cp.CompletedCategories[0] = "changed"
	cp.PreferenceWeights["Strength"] = 0.9
	cp.History[0].ItemID = "changed"

	if p.PreferredCategories[0] != "Strength" {
		t.Error("Clone shares PreferredCategories backing array")
	}
	if p.CompletedCategories[0] != "Cardio" {
		t.Error("Clone shares CompletedCategories backing array")
	}
	if p.PreferenceWeights["Strength"] != 0.5 {
		t.Error("Clone shares PreferenceWeights map")
	}
	if p.History[0].ItemID != "w1" {
		t.Error("Clone shares History backing array")
	}
}
