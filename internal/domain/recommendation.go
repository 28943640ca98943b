// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

import (
	"time"
)

// Result is one recommended workout item with its scores and explanation.
type Result struct {
	// ItemID is the catalog identifier of the recommended item.
	ItemID string `json:"item_id"`

	// ItemName is the display name at generation time.
	ItemName string `json:"item_name"`

	// Confidence is the aggregate fit estimate in [0, 1], combining
	// algorithm agreement and user history depth.
	Confidence float64 `json:"confidence"`

	// Reasoning is the human-readable explanation for the recommendation.
	Reasoning string `json:"reasoning"`

	// Type classifies the recommendation.
	Type RecommendationType `json:"type"`

	// Reasons lists up to three specific supporting facts.
	Reasons []string `json:"reasons,omitempty"`

	// Scores is the raw per-algorithm score breakdown.
	Scores map[string]float64 `json:"scores,omitempty"`

	// GeneratedAt is when the result was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Priority is the coarse rank tier: 1 high, 2 medium, 3 low.
	Priority int `json:"priority"`

	// Metadata carries the item attributes snapshotted at generation time.
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata snapshots item and user attributes at generation time.
// Explicit fields instead of an untyped map keep the information queryable
// without runtime type assertions.
type ResultMetadata struct {
	Category        string          `json:"category"`
	Difficulty      Difficulty      `json:"difficulty"`
	DurationMinutes int             `json:"duration_minutes"`
	FinalScore      float64         `json:"final_score"`
	Experience      ExperienceLevel `json:"experience"`
}

// RecommendationList is an ordered set of results from one generation.
type RecommendationList struct {
	// ID uniquely identifies this generation for tracing.
	ID string `json:"id"`

	// UserID is the profile the list was generated for.
	UserID string `json:"user_id"`

	// Results is the ranked recommendation sequence.
	Results []Result `json:"results"`

	// GeneratedAt is when the list was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// AlgorithmVersion tags the pipeline version that produced the list.
	AlgorithmVersion string `json:"algorithm_version"`

	// Session carries counts and aggregates for this generation.
	Session SessionMetadata `json:"session"`
}

// SessionMetadata describes one generation pass.
type SessionMetadata struct {
	// TotalAnalyzed is the catalog size before filtering.
	TotalAnalyzed int `json:"total_analyzed"`

	// Eligible is the number of items surviving the suitability filter.
	Eligible int `json:"eligible"`

	// Returned is the number of results in the final list.
	Returned int `json:"returned"`

	// MeanConfidence is the average confidence over the final list.
	MeanConfidence float64 `json:"mean_confidence"`

	// DiversityApplied reports whether the diversity constraint ran.
	DiversityApplied bool `json:"diversity_applied"`
}

// TopN returns the first n results, or all of them when fewer exist.
func (l *RecommendationList) TopN(n int) []Result {
	if n < 0 {
		n = 0
	}
	if n > len(l.Results) {
		n = len(l.Results)
	}
	return l.Results[:n]
}

// HighConfidence returns the results with confidence strictly above the
// threshold, preserving order.
func (l *RecommendationList) HighConfidence(threshold float64) []Result {
	out := make([]Result, 0, len(l.Results))
	for i := range l.Results {
		if l.Results[i].Confidence > threshold {
			out = append(out, l.Results[i])
		}
	}
	return out
}

// GroupByType buckets results by recommendation type, preserving order
// within each bucket.
func (l *RecommendationList) GroupByType() map[RecommendationType][]Result {
	groups := make(map[RecommendationType][]Result)
	for i := range l.Results {
		t := l.Results[i].Type
		groups[t] = append(groups[t], l.Results[i])
	}
	return groups
}

// AlgorithmStats recomputes per-algorithm aggregates over the list.
// Stats are derived views, never persisted independently of the list.
func (l *RecommendationList) AlgorithmStats() map[string]AlgorithmStats {
	samples := make(map[string][]float64)
	for i := range l.Results {
		for name, score := range l.Results[i].Scores {
			samples[name] = append(samples[name], score)
		}
	}

	stats := make(map[string]AlgorithmStats, len(samples))
	for name, scores := range samples {
		stats[name] = NewAlgorithmStats(name, scores)
	}
	return stats
}

// Find returns the result for the given item ID, or nil when absent.
func (l *RecommendationList) Find(itemID string) *Result {
	for i := range l.Results {
		if l.Results[i].ItemID == itemID {
			return &l.Results[i]
		}
	}
	return nil
}
