// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package engine is the stateful façade over the recommendation pipeline.
// It owns the current profile and catalog, a time-bounded cache of the last
// generated list, performance counters, and the feedback-ingestion path.
//
// An Engine is an explicit instance constructed by the application and
// passed by reference; there is no process-wide singleton. All methods are
// safe for concurrent use.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/metrics"
	"github.com/lfbraga/fitrec/internal/recommend"
)

// Generator produces recommendation lists. *recommend.Orchestrator is the
// production implementation.
type Generator interface {
	Generate(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem, opts recommend.Options) (*domain.RecommendationList, error)
	GenerateGoalFocused(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem, goal domain.Goal) (*domain.Result, error)
}

// Publisher delivers newly generated lists to subscribers. Publish must not
// block on slow consumers.
type Publisher interface {
	Publish(list *domain.RecommendationList)
}

// Archiver persists generated lists for later history queries.
type Archiver interface {
	SaveList(ctx context.Context, userID string, list *domain.RecommendationList) error
}

// Config tunes the engine's cache and background behavior.
type Config struct {
	// CacheTTL is the validity window of a generated list.
	CacheTTL time.Duration

	// DefaultMaxCount bounds list length when the caller does not specify.
	DefaultMaxCount int

	// GenerationTimeout bounds background generation passes.
	GenerationTimeout time.Duration

	// RegenMinInterval throttles background regeneration triggers.
	RegenMinInterval time.Duration

	// LearningDelay is the simulated duration of a learning pass.
	LearningDelay time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:          30 * time.Minute,
		DefaultMaxCount:   recommend.DefaultMaxCount,
		GenerationTimeout: 30 * time.Second,
		RegenMinInterval:  10 * time.Second,
		LearningDelay:     100 * time.Millisecond,
	}
}

// Engine is the process-level recommendation façade.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
	gen    Generator

	mu          sync.RWMutex
	initialized bool
	profile     *domain.Profile
	catalog     []domain.WorkoutItem
	cached      *domain.RecommendationList
	cachedAt    time.Time

	// epoch is bumped on every invalidation. It is part of the in-flight
	// generation key so a generation started before an invalidation can
	// never repopulate the cache afterwards.
	epoch atomic.Uint64

	flight     singleflight.Group
	regenLimit *rate.Limiter

	publisher Publisher
	archiver  Archiver

	hits          atomic.Uint64
	misses        atomic.Uint64
	genCount      atomic.Uint64
	genTotalNanos atomic.Int64

	now func() time.Time
}

// New constructs an engine around the given generator. Zero config fields
// fall back to DefaultConfig values.
func New(gen Generator, cfg Config, logger zerolog.Logger) *Engine {
	def := DefaultConfig()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.DefaultMaxCount <= 0 {
		cfg.DefaultMaxCount = def.DefaultMaxCount
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = def.GenerationTimeout
	}
	if cfg.RegenMinInterval <= 0 {
		cfg.RegenMinInterval = def.RegenMinInterval
	}
	if cfg.LearningDelay <= 0 {
		cfg.LearningDelay = def.LearningDelay
	}

	return &Engine{
		cfg:        cfg,
		logger:     logger.With().Str("component", "engine").Logger(),
		gen:        gen,
		regenLimit: rate.NewLimiter(rate.Every(cfg.RegenMinInterval), 1),
		now:        time.Now,
	}
}

// SetPublisher wires the subscription topic. Optional; without it new lists
// are simply not broadcast.
func (e *Engine) SetPublisher(p Publisher) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.publisher = p
}

// SetArchiver wires the persistence layer for generated lists. Optional.
func (e *Engine) SetArchiver(a Archiver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.archiver = a
}

// Initialize installs the profile and catalog and kicks off a background
// generation so the first query is likely to hit a warm cache. Background
// failures are logged, never surfaced.
func (e *Engine) Initialize(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem) error {
	if p == nil {
		return fmt.Errorf("initialize: profile is required")
	}

	e.mu.Lock()
	e.initialized = true
	e.profile = p.Clone()
	e.catalog = append([]domain.WorkoutItem(nil), catalog...)
	e.cached = nil
	e.cachedAt = time.Time{}
	e.epoch.Add(1)
	e.mu.Unlock()

	e.logger.Info().
		Str("user_id", p.UserID).
		Int("catalog_size", len(catalog)).
		Msg("engine initialized")

	e.regenAsync("initialize")
	return nil
}

// GetRecommendations returns the cached list when it is still valid, or
// generates a fresh one. Overlapping calls during a miss are coalesced so
// at most one generation runs per cache epoch. Generation always produces
// the full DefaultMaxCount list; maxCount is a per-caller view of it, capped
// at DefaultMaxCount.
func (e *Engine) GetRecommendations(ctx context.Context, maxCount int, forceRefresh bool) (*domain.RecommendationList, error) {
	if maxCount <= 0 || maxCount > e.cfg.DefaultMaxCount {
		maxCount = e.cfg.DefaultMaxCount
	}

	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return nil, ErrNotInitialized
	}
	if !forceRefresh && e.cacheValidLocked() {
		list := e.cached
		e.mu.RUnlock()
		e.hits.Add(1)
		metrics.CacheHits.Inc()
		return truncated(list, maxCount), nil
	}
	userID := e.profile.UserID
	e.mu.RUnlock()

	list, err := e.generate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return truncated(list, maxCount), nil
}

// truncated returns a view of the list limited to n results. The canonical
// list is never mutated; callers asking for fewer results share its backing
// array.
func truncated(list *domain.RecommendationList, n int) *domain.RecommendationList {
	if n >= len(list.Results) {
		return list
	}
	view := *list
	view.Results = list.Results[:n:n]
	view.Session.Returned = n
	return &view
}

// generate runs one coalesced generation pass for the current epoch.
func (e *Engine) generate(ctx context.Context, userID string) (*domain.RecommendationList, error) {
	epoch := e.epoch.Load()
	key := fmt.Sprintf("%s:%d", userID, epoch)

	ch := e.flight.DoChan(key, func() (any, error) {
		return e.generateLocked(epoch)
	})

	select {
	case <-ctx.Done():
		// The in-flight generation keeps running and may still populate
		// the cache; this caller just stops waiting.
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RecommendationList), nil
	}
}

// generateLocked performs the actual generation and cache store. The cache
// is only updated when no invalidation happened while generating.
func (e *Engine) generateLocked(epoch uint64) (*domain.RecommendationList, error) {
	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return nil, ErrNotInitialized
	}
	profile := e.profile
	catalog := e.catalog
	e.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.GenerationTimeout)
	defer cancel()

	start := e.now()
	list, err := e.gen.Generate(ctx, profile, catalog, recommend.Options{
		MaxCount:         e.cfg.DefaultMaxCount,
		IncludeDiversity: true,
	})
	elapsed := e.now().Sub(start)

	if err != nil {
		metrics.GenerationErrors.Inc()
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	e.misses.Add(1)
	e.genCount.Add(1)
	e.genTotalNanos.Add(int64(elapsed))
	metrics.CacheMisses.Inc()
	metrics.GenerationDuration.Observe(elapsed.Seconds())
	metrics.GenerationResults.Observe(float64(len(list.Results)))

	e.mu.Lock()
	if e.epoch.Load() == epoch && e.initialized {
		e.cached = list
		e.cachedAt = e.now()
	}
	publisher := e.publisher
	archiver := e.archiver
	e.mu.Unlock()

	if publisher != nil {
		publisher.Publish(list)
	}
	if archiver != nil {
		go e.archive(profile.UserID, list, archiver)
	}

	return list, nil
}

func (e *Engine) archive(userID string, list *domain.RecommendationList, archiver Archiver) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := archiver.SaveList(ctx, userID, list); err != nil {
		e.logger.Warn().Err(err).Str("list_id", list.ID).Msg("failed to archive recommendation list")
	}
}

// GetGoalFocused passes through to the goal-focused generator. It neither
// consults nor updates the cache.
func (e *Engine) GetGoalFocused(ctx context.Context, goal domain.Goal) (*domain.Result, error) {
	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return nil, ErrNotInitialized
	}
	profile := e.profile
	catalog := e.catalog
	e.mu.RUnlock()

	return e.gen.GenerateGoalFocused(ctx, profile, catalog, goal)
}

// UpdateProfile swaps in a new profile snapshot, invalidates the cache, and
// triggers background regeneration.
func (e *Engine) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return fmt.Errorf("update profile: profile is required")
	}

	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return ErrNotInitialized
	}
	e.profile = p.Clone()
	e.mu.Unlock()

	e.invalidate("profile_update")
	e.regenAsync("profile_update")
	return nil
}

// AddItems appends to the held catalog and invalidates the cache.
func (e *Engine) AddItems(ctx context.Context, items []domain.WorkoutItem) error {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return ErrNotInitialized
	}
	e.catalog = append(e.catalog, items...)
	total := len(e.catalog)
	e.mu.Unlock()

	e.invalidate("catalog_update")
	e.logger.Info().Int("added", len(items)).Int("catalog_size", total).Msg("catalog extended")
	e.regenAsync("catalog_update")
	return nil
}

// PerformLearning simulates an asynchronous weight-adjustment pass and
// invalidates the cache. No weights are mutated; this is the extension
// point for a future tuning step.
func (e *Engine) PerformLearning(ctx context.Context) error {
	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return ErrNotInitialized
	}
	e.mu.RUnlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.cfg.LearningDelay):
	}

	e.logger.Info().Msg("learning pass completed")
	e.invalidate("learning")
	return nil
}

// Reset clears all state and returns the engine to its uninitialized form.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.initialized = false
	e.profile = nil
	e.catalog = nil
	e.cached = nil
	e.cachedAt = time.Time{}
	e.epoch.Add(1)
	e.mu.Unlock()

	e.hits.Store(0)
	e.misses.Store(0)
	e.genCount.Store(0)
	e.genTotalNanos.Store(0)
	metrics.CacheInvalidations.WithLabelValues("reset").Inc()

	e.logger.Info().Msg("engine reset")
}

// invalidate clears the cached list and bumps the epoch so in-flight
// generations from before the invalidation cannot repopulate the cache.
// The bump must happen under the lock: a generation that acquires the lock
// after the clear must already see the new epoch.
func (e *Engine) invalidate(cause string) {
	e.mu.Lock()
	e.cached = nil
	e.cachedAt = time.Time{}
	e.epoch.Add(1)
	e.mu.Unlock()

	metrics.CacheInvalidations.WithLabelValues(cause).Inc()
}

// regenAsync fires a background generation, throttled so bursts of
// triggers collapse into one pass. Failures are logged only.
func (e *Engine) regenAsync(trigger string) {
	if !e.regenLimit.Allow() {
		e.logger.Debug().Str("trigger", trigger).Msg("background regeneration throttled")
		return
	}

	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return
	}
	userID := e.profile.UserID
	e.mu.RUnlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.GenerationTimeout)
		defer cancel()
		if _, err := e.generate(ctx, userID); err != nil {
			e.logger.Warn().Err(err).Str("trigger", trigger).Msg("background regeneration failed")
		}
	}()
}

// cacheValidLocked reports cache validity. Callers must hold at least a
// read lock.
func (e *Engine) cacheValidLocked() bool {
	return e.cached != nil &&
		len(e.cached.Results) > 0 &&
		e.now().Sub(e.cachedAt) < e.cfg.CacheTTL
}
