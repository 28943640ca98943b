// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

import (
	"time"
)

// consistencyWindowDays is the trailing window used for the consistency score.
const consistencyWindowDays = 30

// Profile is an immutable snapshot of a user's state.
//
// Mutation paths (feedback ingestion, explicit updates) must build a new
// Profile via Clone and swap references atomically. Nothing in this package
// modifies a Profile after construction.
type Profile struct {
	// UserID is the external identity of the user.
	UserID string `json:"user_id"`

	// Age in years.
	Age int `json:"age"`

	// WeightKG is body weight in kilograms.
	WeightKG float64 `json:"weight_kg"`

	// HeightM is height in meters.
	HeightM float64 `json:"height_m"`

	// Goal is the primary fitness objective.
	Goal Goal `json:"goal"`

	// ActivityLevel is the self-reported baseline activity.
	ActivityLevel ActivityLevel `json:"activity_level"`

	// PreferredCategories lists workout categories the user has opted into.
	PreferredCategories []string `json:"preferred_categories"`

	// MaxDurationMinutes is the maximum tolerable session length.
	MaxDurationMinutes int `json:"max_duration_minutes"`

	// InjuryRisk is a scalar in [0, 1]; above 0.7 high-impact categories
	// are filtered out entirely.
	InjuryRisk float64 `json:"injury_risk"`

	// PreferenceWeights maps a muscle group or category to a preference
	// scalar in [0, 1]. Feedback with rating >= 4 nudges the rated
	// category's weight upward.
	PreferenceWeights map[string]float64 `json:"preference_weights"`

	// CompletedSessions is the cumulative count of completed sessions.
	CompletedSessions int `json:"completed_sessions"`

	// CompletedCategories records the category of every completed session,
	// in completion order. Used by category-history matching.
	CompletedCategories []string `json:"completed_categories"`

	// History is the ordered record of past sessions, oldest first.
	// Entries are appended, never mutated.
	History []HistoryEntry `json:"history"`

	// AverageRating is the mean user rating over the full history.
	AverageRating float64 `json:"average_rating"`
}

// HistoryEntry is a snapshot of one completed session.
type HistoryEntry struct {
	ItemID          string     `json:"item_id"`
	Category        string     `json:"category"`
	CompletedAt     time.Time  `json:"completed_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Rating          float64    `json:"rating"`
	Calories        int        `json:"calories"`
	Difficulty      Difficulty `json:"difficulty"`
}

// BMI returns weight / height². Returns 0 for a zero height.
func (p *Profile) BMI() float64 {
	if p.HeightM <= 0 {
		return 0
	}
	return p.WeightKG / (p.HeightM * p.HeightM)
}

// Experience derives the experience level from completed sessions:
// beginner below 10, intermediate below 50, advanced otherwise.
func (p *Profile) Experience() ExperienceLevel {
	switch {
	case p.CompletedSessions < 10:
		return ExperienceBeginner
	case p.CompletedSessions < 50:
		return ExperienceIntermediate
	default:
		return ExperienceAdvanced
	}
}

// Consistency returns the fraction of the trailing 30 days with at least one
// completed session, clamped to [0, 1].
func (p *Profile) Consistency(now time.Time) float64 {
	if len(p.History) == 0 {
		return 0
	}

	cutoff := now.AddDate(0, 0, -consistencyWindowDays)
	days := make(map[string]struct{})
	for i := range p.History {
		completed := p.History[i].CompletedAt
		if completed.Before(cutoff) || completed.After(now) {
			continue
		}
		days[completed.Format("2006-01-02")] = struct{}{}
	}

	c := float64(len(days)) / float64(consistencyWindowDays)
	if c > 1 {
		c = 1
	}
	return c
}

// PrefersCategory reports whether cat is one of the preferred categories.
// Comparison is exact; catalogs and profiles share one category vocabulary.
func (p *Profile) PrefersCategory(cat string) bool {
	for _, c := range p.PreferredCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// RecentHistory returns the history entries completed within the trailing
// window ending at now, preserving order.
func (p *Profile) RecentHistory(now time.Time, window time.Duration) []HistoryEntry {
	cutoff := now.Add(-window)
	recent := make([]HistoryEntry, 0, len(p.History))
	for i := range p.History {
		if p.History[i].CompletedAt.After(cutoff) && !p.History[i].CompletedAt.After(now) {
			recent = append(recent, p.History[i])
		}
	}
	return recent
}

// CategoryShare returns the fraction of completed sessions in the given
// category. Returns 0 with no completed categories.
func (p *Profile) CategoryShare(cat string) float64 {
	if len(p.CompletedCategories) == 0 {
		return 0
	}
	n := 0
	for _, c := range p.CompletedCategories {
		if c == cat {
			n++
		}
	}
	return float64(n) / float64(len(p.CompletedCategories))
}

// Clone returns a deep copy safe to mutate independently of the receiver.
func (p *Profile) Clone() *Profile {
	cp := *p

	cp.PreferredCategories = append([]string(nil), p.PreferredCategories...)
	cp.CompletedCategories = append([]string(nil), p.CompletedCategories...)
	cp.History = append([]HistoryEntry(nil), p.History...)

	cp.PreferenceWeights = make(map[string]float64, len(p.PreferenceWeights))
	for k, v := range p.PreferenceWeights {
		cp.PreferenceWeights[k] = v
	}

	return &cp
}
