// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPService wraps an http.Server as a suture service with graceful
// shutdown on context cancellation.
type HTTPService struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewHTTPService wraps the server.
func NewHTTPService(server *http.Server, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("component", "http").Logger(),
	}
}

// Serve runs the server until ctx is cancelled.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("http server shutdown incomplete")
		}
		return ctx.Err()
	}
}

func (s *HTTPService) String() string { return "http-server" }

// Learner is the engine operation driven by the learning loop.
type Learner interface {
	PerformLearning(ctx context.Context) error
}

// LearningService periodically triggers the engine's learning pass so
// preference drift is folded in without an external scheduler.
type LearningService struct {
	learner  Learner
	interval time.Duration
	logger   zerolog.Logger
}

// NewLearningService builds the loop. A non-positive interval defaults to
// one hour.
func NewLearningService(learner Learner, interval time.Duration, logger zerolog.Logger) *LearningService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &LearningService{
		learner:  learner,
		interval: interval,
		logger:   logger.With().Str("component", "learning-loop").Logger(),
	}
}

// Serve runs the loop until ctx is cancelled. Learning failures are logged
// and the loop continues; only cancellation stops it.
func (s *LearningService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.learner.PerformLearning(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				s.logger.Warn().Err(err).Msg("scheduled learning pass failed")
			}
		}
	}
}

func (s *LearningService) String() string { return "learning-loop" }
