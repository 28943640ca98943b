// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package scoring implements the five per-(item, user) scoring functions:
// content-based, collaborative, hybrid, diversity, and progression.
//
// All functions are pure and side-effect free. Every output is clamped to
// [0, 1]. Time-dependent functions take an explicit now argument so results
// are reproducible in tests.
package scoring

// Clamp bounds v to [0, 1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
