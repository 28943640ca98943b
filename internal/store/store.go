// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package store persists user profiles and generated recommendation lists
// in BadgerDB. Every operation is wrapped in a circuit breaker so a
// misbehaving store degrades to errors instead of hanging the engine.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/metrics"
)

// Key prefixes for BadgerDB storage.
const (
	profileKeyPrefix = "profile:"
	listKeyPrefix    = "list:"
	latestKeyPrefix  = "latest:"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is a BadgerDB-backed document store for profiles and lists.
type Store struct {
	db      *badger.DB
	breaker *gobreaker.CircuitBreaker[any]
	logger  zerolog.Logger
}

// Options configures the store.
type Options struct {
	// Path is the Badger data directory. Empty means in-memory.
	Path string

	// FailureThreshold is the consecutive-failure count that trips the
	// circuit breaker.
	FailureThreshold uint32

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

// Open opens or creates the store at opts.Path.
func Open(opts Options, logger zerolog.Logger) (*Store, error) {
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	badgerOpts := badger.DefaultOptions(opts.Path).WithLogger(nil)
	if opts.Path == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", opts.Path, err)
	}

	log := logger.With().Str("component", "store").Logger()

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "fitrec-store",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		// A missing document is an answer, not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store circuit breaker state changed")
		},
	})

	return &Store{db: db, breaker: breaker, logger: log}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfile persists the profile snapshot keyed by user ID.
func (s *Store) SaveProfile(ctx context.Context, p *domain.Profile) error {
	return s.execute(ctx, "save_profile", func() error {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(profileKeyPrefix+p.UserID), data)
		})
	})
}

// LoadProfile returns the stored profile for the user, or ErrNotFound.
func (s *Store) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := s.execute(ctx, "load_profile", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(profileKeyPrefix + userID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("profile %q: %w", userID, ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("get profile: %w", err)
			}
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveList archives a generated list under the user and updates the
// latest-list pointer.
func (s *Store) SaveList(ctx context.Context, userID string, list *domain.RecommendationList) error {
	return s.execute(ctx, "save_list", func() error {
		data, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("marshal list: %w", err)
		}
		return s.db.Update(func(txn *badger.Txn) error {
			key := []byte(listKeyPrefix + userID + ":" + list.GeneratedAt.UTC().Format(time.RFC3339Nano) + ":" + list.ID)
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set list: %w", err)
			}
			if err := txn.Set([]byte(latestKeyPrefix+userID), data); err != nil {
				return fmt.Errorf("set latest pointer: %w", err)
			}
			return nil
		})
	})
}

// LatestList returns the most recently archived list for the user, or
// ErrNotFound.
func (s *Store) LatestList(ctx context.Context, userID string) (*domain.RecommendationList, error) {
	var list domain.RecommendationList
	err := s.execute(ctx, "latest_list", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(latestKeyPrefix + userID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("latest list for %q: %w", userID, ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("get latest list: %w", err)
			}
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &list)
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListHistory returns the user's archived lists generated after the cutoff,
// newest first.
func (s *Store) ListHistory(ctx context.Context, userID string, since time.Time) ([]domain.RecommendationList, error) {
	var lists []domain.RecommendationList
	err := s.execute(ctx, "list_history", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			prefix := []byte(listKeyPrefix + userID + ":")
			opts.Prefix = prefix

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				err := it.Item().Value(func(val []byte) error {
					var list domain.RecommendationList
					if err := json.Unmarshal(val, &list); err != nil {
						return fmt.Errorf("decode archived list: %w", err)
					}
					if list.GeneratedAt.After(since) {
						lists = append(lists, list)
					}
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(lists, func(i, j int) bool {
		return lists[i].GeneratedAt.After(lists[j].GeneratedAt)
	})
	return lists, nil
}

// execute runs fn through the circuit breaker with metrics, honoring
// context cancellation before touching the database.
func (s *Store) execute(ctx context.Context, operation string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	metrics.ObserveStoreOperation(operation, time.Since(start), err)
	return err
}
