// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/lfbraga/fitrec/internal/recommend"
)

// Health statuses reported by diagnostics, from best to worst.
const (
	StatusHealthy  = "healthy"
	StatusWarning  = "warning"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

// diagnosticProbeCount is the list size requested by the probe generation.
const diagnosticProbeCount = 3

// Diagnostics is the structured result of a self-check pass.
type Diagnostics struct {
	Status         string        `json:"status"`
	Issues         []string      `json:"issues,omitempty"`
	CatalogSize    int           `json:"catalog_size"`
	ProbeResults   int           `json:"probe_results"`
	MeanConfidence float64       `json:"mean_confidence"`
	ProbeLatency   time.Duration `json:"probe_latency"`
	CheckedAt      time.Time     `json:"checked_at"`
}

// RunDiagnostics runs a small probe generation and reports on engine
// health. Internal failures become issue entries and a downgraded status
// rather than errors; the method itself never fails.
func (e *Engine) RunDiagnostics(ctx context.Context) Diagnostics {
	d := Diagnostics{Status: StatusHealthy, CheckedAt: e.now()}

	e.mu.RLock()
	initialized := e.initialized
	profile := e.profile
	catalog := e.catalog
	e.mu.RUnlock()

	d.CatalogSize = len(catalog)

	if !initialized {
		d.Status = StatusError
		d.Issues = append(d.Issues, "engine not initialized")
		return d
	}
	if profile == nil {
		d.Status = StatusDegraded
		d.Issues = append(d.Issues, "no user profile loaded")
	}
	if len(catalog) == 0 {
		if d.Status == StatusHealthy {
			d.Status = StatusWarning
		}
		d.Issues = append(d.Issues, "catalog is empty")
	}
	if profile == nil || len(catalog) == 0 {
		return d
	}

	start := e.now()
	list, err := e.gen.Generate(ctx, profile, catalog, recommend.Options{
		MaxCount:         diagnosticProbeCount,
		IncludeDiversity: true,
	})
	d.ProbeLatency = e.now().Sub(start)

	if err != nil {
		d.Status = StatusError
		d.Issues = append(d.Issues, fmt.Sprintf("probe generation failed: %v", err))
		return d
	}

	d.ProbeResults = len(list.Results)
	d.MeanConfidence = list.Session.MeanConfidence
	if d.ProbeResults == 0 {
		if d.Status == StatusHealthy {
			d.Status = StatusWarning
		}
		d.Issues = append(d.Issues, "probe generation returned no results")
	}

	return d
}
