// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package engine

import "errors"

var (
	// ErrNotInitialized is returned when the engine is used before
	// Initialize has been called.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrRecommendationNotFound is returned when feedback references an
	// item absent from the currently cached list.
	ErrRecommendationNotFound = errors.New("recommendation not found in cache")

	// ErrItemNotFound is returned when feedback references an item absent
	// from the catalog.
	ErrItemNotFound = errors.New("item not found in catalog")
)
