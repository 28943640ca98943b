// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/logging"
	"github.com/lfbraga/fitrec/internal/recommend"
)

// mockGenerator counts calls and returns a canned list per invocation.
type mockGenerator struct {
	calls       atomic.Int64
	goalCalls   atomic.Int64
	delay       time.Duration
	err         error
	lastProfile atomic.Pointer[domain.Profile]

	// onGenerate, when set, runs mid-flight before the list is built.
	onGenerate func()
}

func (m *mockGenerator) Generate(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem, opts recommend.Options) (*domain.RecommendationList, error) {
	m.calls.Add(1)
	m.lastProfile.Store(p)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.onGenerate != nil {
		m.onGenerate()
	}
	if m.err != nil {
		return nil, m.err
	}

	results := make([]domain.Result, 0, len(catalog))
	for i := range catalog {
		if opts.MaxCount > 0 && len(results) >= opts.MaxCount {
			break
		}
		results = append(results, domain.Result{
			ItemID:     catalog[i].ID,
			ItemName:   catalog[i].Name,
			Confidence: 0.8,
			Type:       domain.TypePersonalBest,
			Priority:   1,
			Metadata:   domain.ResultMetadata{Category: catalog[i].Category},
		})
	}
	return &domain.RecommendationList{
		ID:          uuid.NewString(),
		Results:     results,
		GeneratedAt: time.Now(),
	}, nil
}

func (m *mockGenerator) GenerateGoalFocused(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem, goal domain.Goal) (*domain.Result, error) {
	m.goalCalls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if len(catalog) == 0 {
		return nil, nil
	}
	return &domain.Result{ItemID: catalog[0].ID, Type: domain.TypeGoalOriented}, nil
}

// recordingPublisher captures published lists.
type recordingPublisher struct {
	mu    sync.Mutex
	lists []*domain.RecommendationList
}

func (r *recordingPublisher) Publish(list *domain.RecommendationList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists = append(r.lists, list)
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lists)
}

func engineProfile() *domain.Profile {
	return &domain.Profile{
		UserID:             "u1",
		Age:                30,
		WeightKG:           75,
		HeightM:            1.75,
		Goal:               domain.GoalLoseWeight,
		MaxDurationMinutes: 60,
		CompletedSessions:  10,
		PreferenceWeights:  map[string]float64{"Strength": 0.5},
	}
}

func engineCatalog() []domain.WorkoutItem {
	return []domain.WorkoutItem{
		{ID: "w1", Name: "Push Day", Category: "Strength", Difficulty: domain.DifficultyIntermediate, DurationMinutes: 40, Calories: 290},
		{ID: "w2", Name: "Easy Run", Category: "Cardio", Difficulty: domain.DifficultyBeginner, DurationMinutes: 30, Calories: 250},
	}
}

// newTestEngine builds an engine with background regeneration effectively
// disabled so generator call counts stay deterministic.
func newTestEngine(gen Generator) *Engine {
	return New(gen, Config{
		CacheTTL:         30 * time.Minute,
		RegenMinInterval: 24 * time.Hour,
		LearningDelay:    time.Millisecond,
	}, logging.Nop())
}

// initTestEngine initializes without triggering the background pass.
func initTestEngine(t *testing.T, e *Engine) {
	t.Helper()
	// Drain the limiter so Initialize's regeneration is throttled away.
	e.regenLimit.Allow()
	if err := e.Initialize(context.Background(), engineProfile(), engineCatalog()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
}

func TestGetRecommendationsBeforeInitialize(t *testing.T) {
	e := newTestEngine(&mockGenerator{})

	_, err := e.GetRecommendations(context.Background(), 5, false)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}

	s := e.Stats()
	if s.CacheHits != 0 || s.CacheMisses != 0 || s.Initialized {
		t.Errorf("state mutated by failed call: %+v", s)
	}
}

func TestCacheHitWithinTTL(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	first, err := e.GetRecommendations(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	second, err := e.GetRecommendations(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if gen.calls.Load() != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls.Load())
	}
	if first != second {
		t.Error("cached call returned a different list object")
	}

	s := e.Stats()
	if s.CacheHits != 1 || s.CacheMisses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", s.CacheHits, s.CacheMisses)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// Move the clock past the TTL.
	e.mu.Lock()
	e.cachedAt = time.Now().Add(-31 * time.Minute)
	e.mu.Unlock()

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if gen.calls.Load() != 2 {
		t.Errorf("generator called %d times, want 2 after expiry", gen.calls.Load())
	}
}

func TestForceRefreshRegenerates(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := e.GetRecommendations(context.Background(), 5, true); err != nil {
		t.Fatalf("forced call: %v", err)
	}
	if gen.calls.Load() != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls.Load())
	}
}

func TestConcurrentMissesCoalesce(t *testing.T) {
	gen := &mockGenerator{delay: 50 * time.Millisecond}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.GetRecommendations(context.Background(), 5, false)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: %v", i, err)
		}
	}
	if gen.calls.Load() != 1 {
		t.Errorf("generator called %d times, want 1 for coalesced misses", gen.calls.Load())
	}
}

func TestConcurrentMixedCountsCoalesce(t *testing.T) {
	gen := &mockGenerator{delay: 50 * time.Millisecond}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	var wg sync.WaitGroup
	var small, large *domain.RecommendationList
	var errSmall, errLarge error
	wg.Add(2)
	go func() {
		defer wg.Done()
		large, errLarge = e.GetRecommendations(context.Background(), 5, false)
	}()
	go func() {
		defer wg.Done()
		small, errSmall = e.GetRecommendations(context.Background(), 1, false)
	}()
	wg.Wait()

	if errSmall != nil || errLarge != nil {
		t.Fatalf("errors: %v, %v", errSmall, errLarge)
	}
	if gen.calls.Load() != 1 {
		t.Errorf("generator called %d times, want 1 across different counts", gen.calls.Load())
	}
	if len(small.Results) != 1 || small.Session.Returned != 1 {
		t.Errorf("small caller got %d results (Returned %d), want 1", len(small.Results), small.Session.Returned)
	}
	if len(large.Results) != 2 {
		t.Errorf("large caller got %d results, want the full 2", len(large.Results))
	}

	// The cached canonical list serves truncated views on hits too.
	hit, err := e.GetRecommendations(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("cache hit: %v", err)
	}
	if len(hit.Results) != 1 {
		t.Errorf("cache hit with count 1 got %d results", len(hit.Results))
	}
	if gen.calls.Load() != 1 {
		t.Errorf("generator called %d times after hit, want 1", gen.calls.Load())
	}
}

func TestInvalidationDuringFlightNotCached(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)

	var once sync.Once
	gen.onGenerate = func() {
		once.Do(func() {
			p := engineProfile()
			p.Goal = domain.GoalGainMuscle
			if err := e.UpdateProfile(context.Background(), p); err != nil {
				t.Errorf("UpdateProfile: %v", err)
			}
		})
	}
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("first call: %v", err)
	}

	e.mu.RLock()
	cached := e.cached
	e.mu.RUnlock()
	if cached != nil {
		t.Fatal("generation that overlapped an invalidation repopulated the cache")
	}

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if gen.calls.Load() != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls.Load())
	}
	if got := gen.lastProfile.Load().Goal; got != domain.GoalGainMuscle {
		t.Errorf("regeneration used goal %s, want the updated gain_muscle", got)
	}
}

func TestInvalidateBumpsEpoch(t *testing.T) {
	e := newTestEngine(&mockGenerator{})
	initTestEngine(t, e)

	before := e.epoch.Load()
	e.invalidate("learning")
	if got := e.epoch.Load(); got != before+1 {
		t.Errorf("epoch = %d after invalidation, want %d", got, before+1)
	}
}

func TestGenerationPublishes(t *testing.T) {
	gen := &mockGenerator{}
	pub := &recordingPublisher{}
	e := newTestEngine(gen)
	e.SetPublisher(pub)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	if pub.count() != 1 {
		t.Errorf("published %d lists, want 1", pub.count())
	}

	// Cache hit must not republish.
	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("cached call: %v", err)
	}
	if pub.count() != 1 {
		t.Errorf("published %d lists after cache hit, want 1", pub.count())
	}
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	p := engineProfile()
	p.Goal = domain.GoalGainMuscle
	if err := e.UpdateProfile(context.Background(), p); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("after update: %v", err)
	}
	if gen.calls.Load() < 2 {
		t.Errorf("generator called %d times, want regeneration after profile update", gen.calls.Load())
	}
}

func TestAddItemsInvalidatesCache(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	err := e.AddItems(context.Background(), []domain.WorkoutItem{
		{ID: "w3", Name: "Stretch", Category: "Flexibility", Difficulty: domain.DifficultyBeginner, DurationMinutes: 20},
	})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}

	list, err := e.GetRecommendations(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("after add: %v", err)
	}
	if gen.calls.Load() != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls.Load())
	}
	if list.Find("w3") == nil {
		t.Error("new item absent from regenerated list")
	}
}

// waitForCalls polls until the generator reaches the wanted call count.
func waitForCalls(t *testing.T, gen *mockGenerator, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for gen.calls.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("generator calls = %d, want at least %d", gen.calls.Load(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAddItemsTriggersBackgroundRegeneration(t *testing.T) {
	gen := &mockGenerator{}
	e := New(gen, Config{
		CacheTTL:         30 * time.Minute,
		RegenMinInterval: time.Nanosecond,
		LearningDelay:    time.Millisecond,
	}, logging.Nop())

	if err := e.Initialize(context.Background(), engineProfile(), engineCatalog()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	waitForCalls(t, gen, 1)

	err := e.AddItems(context.Background(), []domain.WorkoutItem{
		{ID: "w3", Name: "Stretch", Category: "Flexibility", Difficulty: domain.DifficultyBeginner, DurationMinutes: 20},
	})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	waitForCalls(t, gen, 2)
}

func TestGetGoalFocusedBypassesCache(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetGoalFocused(context.Background(), domain.GoalEndurance); err != nil {
		t.Fatalf("GetGoalFocused: %v", err)
	}
	if gen.goalCalls.Load() != 1 {
		t.Errorf("goal generator called %d times, want 1", gen.goalCalls.Load())
	}
	if gen.calls.Load() != 0 {
		t.Errorf("full generator called %d times, want 0", gen.calls.Load())
	}
}

func TestPerformLearningInvalidates(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("warm up: %v", err)
	}
	if err := e.PerformLearning(context.Background()); err != nil {
		t.Fatalf("PerformLearning: %v", err)
	}
	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("after learning: %v", err)
	}
	if gen.calls.Load() != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls.Load())
	}
}

func TestResetClearsState(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	e.Reset()

	if _, err := e.GetRecommendations(context.Background(), 5, false); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("after reset err = %v, want ErrNotInitialized", err)
	}
	s := e.Stats()
	if s.Initialized || s.CacheHits != 0 || s.CacheMisses != 0 || s.CatalogSize != 0 {
		t.Errorf("stats after reset = %+v", s)
	}
}

func TestGenerationErrorPropagates(t *testing.T) {
	genErr := errors.New("boom")
	gen := &mockGenerator{err: genErr}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	if _, err := e.GetRecommendations(context.Background(), 5, false); !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want wrapped generator error", err)
	}
}

func TestStatsHitRate(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	initTestEngine(t, e)

	for i := 0; i < 4; i++ {
		if _, err := e.GetRecommendations(context.Background(), 5, false); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	s := e.Stats()
	if s.CacheMisses != 1 || s.CacheHits != 3 {
		t.Fatalf("hits/misses = %d/%d, want 3/1", s.CacheHits, s.CacheMisses)
	}
	if s.HitRate != 0.75 {
		t.Errorf("HitRate = %v, want 0.75", s.HitRate)
	}
	if !s.CacheValid {
		t.Error("CacheValid = false, want true")
	}
	if s.CatalogSize != 2 {
		t.Errorf("CatalogSize = %d, want 2", s.CatalogSize)
	}
}
