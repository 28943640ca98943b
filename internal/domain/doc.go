// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package domain defines the value types shared by the recommendation core:
// user profiles, workout catalog items, session history, recommendation
// results and lists, and per-algorithm statistics.
//
// All types are plain data with derived read-only accessors. Profiles are
// treated as immutable snapshots: mutation paths (feedback, updates) build a
// new Profile via Clone and swap references, never modify one in place.
//
// This package has no dependencies on other internal packages to maintain
// clean separation between the data model and the scoring/orchestration
// layers.
package domain
