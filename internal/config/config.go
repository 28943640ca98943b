// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package config loads the application configuration with layered sources:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Engine  EngineConfig  `koanf:"engine"`
	Store   StoreConfig   `koanf:"store"`
	API     APIConfig     `koanf:"api"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// LoggingConfig configures the zerolog output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`
}

// EngineConfig tunes the recommendation engine.
type EngineConfig struct {
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	DefaultMaxCount   int           `koanf:"default_max_count"`
	GenerationTimeout time.Duration `koanf:"generation_timeout"`
	RegenMinInterval  time.Duration `koanf:"regen_min_interval"`
	LearningDelay     time.Duration `koanf:"learning_delay"`
}

// StoreConfig configures the BadgerDB document store.
type StoreConfig struct {
	// Path is the data directory. Empty selects an in-memory store.
	Path string `koanf:"path"`

	FailureThreshold uint32        `koanf:"failure_threshold"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout"`
}

// APIConfig configures the HTTP API surface.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8574,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Engine: EngineConfig{
			CacheTTL:          30 * time.Minute,
			DefaultMaxCount:   10,
			GenerationTimeout: 30 * time.Second,
			RegenMinInterval:  10 * time.Second,
			LearningDelay:     100 * time.Millisecond,
		},
		Store: StoreConfig{
			Path:             "/data/fitrec",
			FailureThreshold: 5,
			BreakerTimeout:   30 * time.Second,
		},
		API: APIConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// Validate checks the configuration for values that would misbehave at
// runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1, 65535]", c.Server.Port)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format)
	}

	if c.Engine.CacheTTL <= 0 {
		return fmt.Errorf("engine.cache_ttl must be positive, got %s", c.Engine.CacheTTL)
	}
	if c.Engine.DefaultMaxCount < 1 {
		return fmt.Errorf("engine.default_max_count must be at least 1, got %d", c.Engine.DefaultMaxCount)
	}
	if c.Engine.GenerationTimeout <= 0 {
		return fmt.Errorf("engine.generation_timeout must be positive, got %s", c.Engine.GenerationTimeout)
	}

	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be at least 1, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
	}

	return nil
}
