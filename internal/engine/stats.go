// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package engine

import (
	"time"
)

// Stats is a point-in-time snapshot of engine performance counters.
type Stats struct {
	Initialized bool `json:"initialized"`
	CacheValid  bool `json:"cache_valid"`

	CacheHits   uint64  `json:"cache_hits"`
	CacheMisses uint64  `json:"cache_misses"`
	HitRate     float64 `json:"hit_rate"`

	Generations          uint64        `json:"generations"`
	AvgGenerationLatency time.Duration `json:"avg_generation_latency"`

	CatalogSize int `json:"catalog_size"`
}

// Stats returns a consistent snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	s := Stats{
		Initialized: e.initialized,
		CacheValid:  e.initialized && e.cacheValidLocked(),
		CatalogSize: len(e.catalog),
	}
	e.mu.RUnlock()

	s.CacheHits = e.hits.Load()
	s.CacheMisses = e.misses.Load()
	if total := s.CacheHits + s.CacheMisses; total > 0 {
		s.HitRate = float64(s.CacheHits) / float64(total)
	}

	s.Generations = e.genCount.Load()
	if s.Generations > 0 {
		s.AvgGenerationLatency = time.Duration(e.genTotalNanos.Load() / int64(s.Generations))
	}

	return s
}
