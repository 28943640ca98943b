// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package domain

import (
	"math"
)

// AlgorithmStats is a rolling aggregate over the scores one named algorithm
// contributed to a list.
type AlgorithmStats struct {
	Algorithm string  `json:"algorithm"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Max       float64 `json:"max"`
	Min       float64 `json:"min"`
	StdDev    float64 `json:"std_dev"`
}

// NewAlgorithmStats computes aggregates over the given scores. An empty
// sample yields a zero-valued struct with only the name set.
func NewAlgorithmStats(name string, scores []float64) AlgorithmStats {
	s := AlgorithmStats{Algorithm: name, Count: len(scores)}
	if len(scores) == 0 {
		return s
	}

	s.Min = scores[0]
	s.Max = scores[0]
	var sum float64
	for _, v := range scores {
		sum += v
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
	}
	s.Mean = sum / float64(len(scores))

	var variance float64
	for _, v := range scores {
		d := v - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(len(scores)))

	return s
}
