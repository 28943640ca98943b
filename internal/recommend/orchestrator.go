// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package recommend

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/scoring"
)

// AlgorithmVersion tags every generated list with the pipeline revision.
const AlgorithmVersion = "hybrid-v2"

// Filter thresholds.
const (
	// durationSlack allows items slightly above the stated maximum.
	durationSlack = 1.2
	// maxDifficultyGap is the widest tolerated tier distance.
	maxDifficultyGap = 2
	// highInjuryRisk gates the high-impact category filter.
	highInjuryRisk = 0.7
)

// highImpactCategories are excluded for high injury-risk users.
var highImpactCategories = map[string]struct{}{
	"hiit":        {},
	"plyometrics": {},
}

// Options controls one generation pass.
type Options struct {
	// MaxCount bounds the returned list length.
	MaxCount int

	// IncludeDiversity applies the category diversity constraint.
	IncludeDiversity bool
}

// DefaultMaxCount is used when Options.MaxCount is not positive.
const DefaultMaxCount = 10

// Orchestrator turns a profile and catalog into a ranked recommendation
// list. It is stateless apart from a generation counter and safe for
// concurrent use.
type Orchestrator struct {
	logger      zerolog.Logger
	now         func() time.Time
	generations atomic.Uint64
}

// NewOrchestrator creates an orchestrator logging through the given logger.
func NewOrchestrator(logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		logger: logger.With().Str("component", "orchestrator").Logger(),
		now:    time.Now,
	}
}

// Generations returns the number of completed generation passes.
func (o *Orchestrator) Generations() uint64 {
	return o.generations.Load()
}

// Generate runs the full pipeline: filter, score, classify, rank,
// diversify. The context is checked between stages so a cancelled caller
// stops paying for work it no longer wants.
func (o *Orchestrator) Generate(ctx context.Context, p *domain.Profile, catalog []domain.WorkoutItem, opts Options) (*domain.RecommendationList, error) {
	if opts.MaxCount <= 0 {
		opts.MaxCount = DefaultMaxCount
	}
	now := o.now()
	start := now

	eligible := filterSuitable(p, catalog)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.Result, 0, len(eligible))
	for i := range eligible {
		results = append(results, o.evaluate(eligible[i], p, now))
		if i%64 == 63 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	sortResults(results)

	diversityApplied := false
	if opts.IncludeDiversity {
		results = diversify(results, opts.MaxCount)
		diversityApplied = true
	} else if len(results) > opts.MaxCount {
		results = results[:opts.MaxCount]
	}

	o.generations.Add(1)

	list := &domain.RecommendationList{
		ID:               uuid.NewString(),
		UserID:           p.UserID,
		Results:          results,
		GeneratedAt:      now,
		AlgorithmVersion: AlgorithmVersion,
		Session: domain.SessionMetadata{
			TotalAnalyzed:    len(catalog),
			Eligible:         len(eligible),
			Returned:         len(results),
			MeanConfidence:   meanConfidence(results),
			DiversityApplied: diversityApplied,
		},
	}

	o.logger.Debug().
		Str("list_id", list.ID).
		Int("analyzed", len(catalog)).
		Int("eligible", len(eligible)).
		Int("returned", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("generated recommendations")

	return list, nil
}

// evaluate scores and classifies a single item.
func (o *Orchestrator) evaluate(item domain.WorkoutItem, p *domain.Profile, now time.Time) domain.Result {
	scores := scoring.All(item, p, now)
	recType := classify(item, p, scores, now)
	final := finalScore(recType, scores)
	confidence := confidenceScore(scores, p)

	return domain.Result{
		ItemID:      item.ID,
		ItemName:    item.Name,
		Confidence:  confidence,
		Reasoning:   buildReasoning(item, p, recType),
		Type:        recType,
		Reasons:     buildReasons(item, p, scores),
		Scores:      scores.Map(),
		GeneratedAt: now,
		Priority:    priorityFor(final),
		Metadata: domain.ResultMetadata{
			Category:        item.Category,
			Difficulty:      item.Difficulty,
			DurationMinutes: item.DurationMinutes,
			FinalScore:      final,
			Experience:      p.Experience(),
		},
	}
}

// filterSuitable drops items the user cannot or should not attempt: too
// long, too far from their experience tier, or high-impact under elevated
// injury risk.
func filterSuitable(p *domain.Profile, catalog []domain.WorkoutItem) []domain.WorkoutItem {
	out := make([]domain.WorkoutItem, 0, len(catalog))
	for _, item := range catalog {
		if p.MaxDurationMinutes > 0 &&
			float64(item.DurationMinutes) > durationSlack*float64(p.MaxDurationMinutes) {
			continue
		}

		gap := item.Difficulty.Level() - p.Experience().Level()
		if gap < 0 {
			gap = -gap
		}
		if gap > maxDifficultyGap {
			continue
		}

		if p.InjuryRisk > highInjuryRisk {
			if _, high := highImpactCategories[strings.ToLower(item.Category)]; high {
				continue
			}
		}

		out = append(out, item)
	}
	return out
}

// classify picks the recommendation type; the first matching rule wins.
func classify(item domain.WorkoutItem, p *domain.Profile, s scoring.Scores, now time.Time) domain.RecommendationType {
	if s.Progression > 0.8 {
		return domain.TypeProgressive
	}
	if s.Diversity > 0.8 {
		return domain.TypeVariety
	}
	if s.Hybrid > 0.9 {
		return domain.TypePersonalBest
	}
	if goalAligned(item, p) {
		return domain.TypeGoalOriented
	}
	if p.Consistency(now) < 0.3 {
		return domain.TypeRecovery
	}
	if s.Hybrid > 0.7 {
		return domain.TypeChallenge
	}
	return domain.TypePersonalBest
}

// goalAligned reports whether the item advances the user's stated goal.
func goalAligned(item domain.WorkoutItem, p *domain.Profile) bool {
	category := strings.ToLower(item.Category)
	switch p.Goal {
	case domain.GoalLoseWeight:
		return float64(item.Calories) > p.WeightKG*4
	case domain.GoalGainMuscle, domain.GoalStrength:
		return category == "strength"
	case domain.GoalEndurance:
		return category == "cardio"
	case domain.GoalFlexibility:
		return category == "yoga" || category == "flexibility" || category == "pilates"
	default:
		return false
	}
}

// finalScore selects the ranking score matching the chosen type.
func finalScore(t domain.RecommendationType, s scoring.Scores) float64 {
	switch t {
	case domain.TypeProgressive:
		return s.Progression
	case domain.TypeVariety:
		return s.Diversity
	case domain.TypeGoalOriented:
		return s.Content
	default:
		return s.Hybrid
	}
}

// confidenceScore aggregates the five scores: their mean, plus a history
// bonus capped at 0.2, minus a consensus penalty proportional to the
// standard deviation. Disagreeing algorithms lower confidence.
func confidenceScore(s scoring.Scores, p *domain.Profile) float64 {
	values := s.Values()

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(values)))

	bonus := math.Min(0.2, float64(p.CompletedSessions)/100)

	return scoring.Clamp(mean + bonus - 0.3*stddev)
}

// priorityFor maps a final score onto the coarse rank tier.
func priorityFor(final float64) int {
	switch {
	case final > 0.8:
		return 1
	case final > 0.6:
		return 2
	default:
		return 3
	}
}

// sortResults orders by ascending priority, ties broken by descending
// confidence.
func sortResults(results []domain.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Priority != results[j].Priority {
			return results[i].Priority < results[j].Priority
		}
		return results[i].Confidence > results[j].Confidence
	})
}

// diversify greedily keeps the first occurrence of each category. Items
// with confidence above 0.9 bypass the category constraint. When the quota
// is still unfilled, the highest-ranked skipped items backfill in their
// original order.
func diversify(results []domain.Result, maxCount int) []domain.Result {
	if len(results) <= 1 {
		return results
	}

	kept := make([]domain.Result, 0, maxCount)
	skipped := make([]domain.Result, 0, len(results))
	seen := make(map[string]struct{})

	for i := range results {
		if len(kept) >= maxCount {
			break
		}
		category := results[i].Metadata.Category
		if _, dup := seen[category]; dup && results[i].Confidence <= 0.9 {
			skipped = append(skipped, results[i])
			continue
		}
		seen[category] = struct{}{}
		kept = append(kept, results[i])
	}

	for i := range skipped {
		if len(kept) >= maxCount {
			break
		}
		kept = append(kept, skipped[i])
	}

	sortResults(kept)
	return kept
}

func meanConfidence(results []domain.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for i := range results {
		sum += results[i].Confidence
	}
	return sum / float64(len(results))
}
