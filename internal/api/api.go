// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package api exposes the recommendation engine over HTTP using the Chi
// router.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lfbraga/fitrec/internal/config"
	"github.com/lfbraga/fitrec/internal/engine"
	"github.com/lfbraga/fitrec/internal/store"
)

// Router builds the HTTP handler tree around an engine instance.
type Router struct {
	engine   *engine.Engine
	archive  *store.Store
	cfg      config.APIConfig
	logger   zerolog.Logger
	validate *validator.Validate
}

// NewRouter wires the API. The archive store may be nil; history endpoints
// then answer 404.
func NewRouter(eng *engine.Engine, archive *store.Store, cfg config.APIConfig, logger zerolog.Logger) *Router {
	return &Router{
		engine:   eng,
		archive:  archive,
		cfg:      cfg,
		logger:   logger.With().Str("component", "api").Logger(),
		validate: validator.New(),
	}
}

// Handler assembles the routing tree with the global middleware stack.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.requestMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", rt.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			rt.cfg.RateLimitReqs,
			rt.cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))

		r.Get("/recommendations", rt.handleGetRecommendations)
		r.Get("/recommendations/goal/{goal}", rt.handleGetGoalFocused)
		r.Post("/feedback", rt.handleFeedback)
		r.Put("/profile", rt.handleUpdateProfile)
		r.Post("/items", rt.handleAddItems)
		r.Post("/learning", rt.handleLearning)
		r.Get("/stats", rt.handleStats)
		r.Get("/diagnostics", rt.handleDiagnostics)
		r.Get("/history", rt.handleHistory)
	})

	return r
}

// Server builds an http.Server around the handler.
func (rt *Router) Server(srvCfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              srvCfg.Host + ":" + strconv.Itoa(srvCfg.Port),
		Handler:           rt.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       srvCfg.Timeout,
		WriteTimeout:      srvCfg.Timeout,
		IdleTimeout:       2 * srvCfg.Timeout,
	}
}
