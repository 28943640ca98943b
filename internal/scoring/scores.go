// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package scoring

import (
	"time"

	"github.com/lfbraga/fitrec/internal/domain"
)

// Algorithm names used as map keys in score breakdowns.
const (
	AlgorithmContent       = "content"
	AlgorithmCollaborative = "collaborative"
	AlgorithmHybrid        = "hybrid"
	AlgorithmDiversity     = "diversity"
	AlgorithmProgression   = "progression"
)

// Scores holds one complete per-item evaluation.
type Scores struct {
	Content       float64
	Collaborative float64
	Hybrid        float64
	Diversity     float64
	Progression   float64
}

// All computes the five scores for one (item, user) pair.
func All(item domain.WorkoutItem, p *domain.Profile, now time.Time) Scores {
	content := ContentBased(item, p, now)
	collaborative := Collaborative(item, p)

	return Scores{
		Content:       content,
		Collaborative: collaborative,
		Hybrid:        blend(content, collaborative, p.CompletedSessions),
		Diversity:     Diversity(item, p, now),
		Progression:   Progression(item, p),
	}
}

// Map returns the breakdown keyed by algorithm name.
func (s Scores) Map() map[string]float64 {
	return map[string]float64{
		AlgorithmContent:       s.Content,
		AlgorithmCollaborative: s.Collaborative,
		AlgorithmHybrid:        s.Hybrid,
		AlgorithmDiversity:     s.Diversity,
		AlgorithmProgression:   s.Progression,
	}
}

// Values returns the five scores in a fixed order for aggregate math.
func (s Scores) Values() [5]float64 {
	return [5]float64{s.Content, s.Collaborative, s.Hybrid, s.Diversity, s.Progression}
}
