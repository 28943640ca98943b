// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

import (
	"math"
	"testing"
)

func sampleList() *RecommendationList {
	return &RecommendationList{
		ID: "list-1",
		Results: []Result{
			{ItemID: "a", Confidence: 0.95, Type: TypePersonalBest, Scores: map[string]float64{"hybrid": 0.9}},
			{ItemID: "b", Confidence: 0.7, Type: TypeProgressive, Scores: map[string]float64{"hybrid": 0.6}},
			{ItemID: "c", Confidence: 0.4, Type: TypePersonalBest, Scores: map[string]float64{"hybrid": 0.3}},
		},
	}
}

func TestTopN(t *testing.T) {
	l := sampleList()

	if got := l.TopN(2); len(got) != 2 || got[0].ItemID != "a" || got[1].ItemID != "b" {
		t.Errorf("TopN(2) = %v", got)
	}
	if got := l.TopN(10); len(got) != 3 {
		t.Errorf("TopN beyond length returned %d results, want 3", len(got))
	}
	if got := l.TopN(-1); len(got) != 0 {
		t.Errorf("TopN(-1) returned %d results, want 0", len(got))
	}
}

func TestHighConfidence(t *testing.T) {
	l := sampleList()

	got := l.HighConfidence(0.6)
	if len(got) != 2 {
		t.Fatalf("HighConfidence(0.6) returned %d results, want 2", len(got))
	}
	if got[0].ItemID != "a" || got[1].ItemID != "b" {
		t.Errorf("HighConfidence order = %s, %s; want a, b", got[0].ItemID, got[1].ItemID)
	}

	// Strictly above: a result exactly at the threshold is excluded.
	if got := l.HighConfidence(0.95); len(got) != 0 {
		t.Errorf("HighConfidence(0.95) returned %d results, want 0", len(got))
	}
}

func TestGroupByType(t *testing.T) {
	groups := sampleList().GroupByType()

	if len(groups[TypePersonalBest]) != 2 {
		t.Errorf("personal_best group has %d results, want 2", len(groups[TypePersonalBest]))
	}
	if len(groups[TypeProgressive]) != 1 {
		t.Errorf("progressive group has %d results, want 1", len(groups[TypeProgressive]))
	}
	if groups[TypePersonalBest][0].ItemID != "a" {
		t.Errorf("group order not preserved, first = %s", groups[TypePersonalBest][0].ItemID)
	}
}

func TestAlgorithmStatsAggregation(t *testing.T) {
	stats := sampleList().AlgorithmStats()

	hybrid, ok := stats["hybrid"]
	if !ok {
		t.Fatal("missing hybrid stats")
	}
	if hybrid.Count != 3 {
		t.Errorf("Count = %d, want 3", hybrid.Count)
	}
	if want := (0.9 + 0.6 + 0.3) / 3; math.Abs(hybrid.Mean-want) > 1e-12 {
		t.Errorf("Mean = %v, want %v", hybrid.Mean, want)
	}
	if hybrid.Max != 0.9 || hybrid.Min != 0.3 {
		t.Errorf("Max/Min = %v/%v, want 0.9/0.3", hybrid.Max, hybrid.Min)
	}
	if hybrid.StdDev <= 0 {
		t.Errorf("StdDev = %v, want positive", hybrid.StdDev)
	}
}

func TestNewAlgorithmStatsEmpty(t *testing.T) {
	s := NewAlgorithmStats("content", nil)
	if s.Algorithm != "content" || s.Count != 0 || s.Mean != 0 || s.StdDev != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestFind(t *testing.T) {
	l := sampleList()

	if r := l.Find("b"); r == nil || r.ItemID != "b" {
		t.Errorf("Find(b) = %v", r)
	}
	if r := l.Find("missing"); r != nil {
		t.Errorf("Find(missing) = %v, want nil", r)
	}
}
