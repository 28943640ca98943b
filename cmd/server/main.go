// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Command server runs the FitRec recommendation service: the engine, its
// pubsub topic and archive store, and the HTTP API, all under a suture
// supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lfbraga/fitrec/internal/api"
	"github.com/lfbraga/fitrec/internal/config"
	"github.com/lfbraga/fitrec/internal/engine"
	"github.com/lfbraga/fitrec/internal/logging"
	"github.com/lfbraga/fitrec/internal/pubsub"
	"github.com/lfbraga/fitrec/internal/recommend"
	"github.com/lfbraga/fitrec/internal/store"
	"github.com/lfbraga/fitrec/internal/supervisor"
)

// learningInterval is how often the supervised learning loop runs.
const learningInterval = time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Msg("starting fitrec")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(store.Options{
		Path:             cfg.Store.Path,
		FailureThreshold: cfg.Store.FailureThreshold,
		BreakerTimeout:   cfg.Store.BreakerTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Msg("store close failed")
		}
	}()

	orch := recommend.NewOrchestrator(logger)
	eng := engine.New(orch, engine.Config{
		CacheTTL:          cfg.Engine.CacheTTL,
		DefaultMaxCount:   cfg.Engine.DefaultMaxCount,
		GenerationTimeout: cfg.Engine.GenerationTimeout,
		RegenMinInterval:  cfg.Engine.RegenMinInterval,
		LearningDelay:     cfg.Engine.LearningDelay,
	}, logger)

	topic := pubsub.NewTopic(logger, logging.NewWatermillAdapter(logger))
	defer func() {
		if err := topic.Close(); err != nil {
			logger.Warn().Err(err).Msg("topic close failed")
		}
	}()
	eng.SetPublisher(topic)
	eng.SetArchiver(st)

	profile, catalog := bootstrapData(ctx, st, logger)
	if err := st.SaveProfile(ctx, profile); err != nil {
		logger.Warn().Err(err).Msg("failed to persist bootstrap profile")
	}
	if err := eng.Initialize(ctx, profile, catalog); err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	router := api.NewRouter(eng, st, cfg.API, logger)
	httpServer := router.Server(cfg.Server)

	tree := supervisor.NewTree(
		slog.New(logging.NewSlogHandler(logger)),
		supervisor.DefaultTreeConfig(),
	)
	tree.AddAPIService(supervisor.NewHTTPService(httpServer, 10*time.Second, logger))
	tree.AddCoreService(supervisor.NewLearningService(eng, learningInterval, logger))

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor exited: %w", err)
	}

	logger.Info().Msg("fitrec stopped")
	return nil
}
