// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

package pubsub

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/logging"
)

func testList(id string) *domain.RecommendationList {
	return &domain.RecommendationList{
		ID:               id,
		UserID:           "u1",
		GeneratedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		AlgorithmVersion: "hybrid-v2",
		Results: []domain.Result{
			{ItemID: "w1", Confidence: 0.8, Type: domain.TypePersonalBest},
		},
	}
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	topic := NewTopic(logging.Nop(), nil)
	defer topic.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lists, err := topic.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	topic.Publish(testList("list-1"))

	select {
	case got := <-lists:
		if got.ID != "list-1" || got.UserID != "u1" {
			t.Errorf("received %s/%s, want list-1/u1", got.ID, got.UserID)
		}
		if len(got.Results) != 1 || got.Results[0].ItemID != "w1" {
			t.Errorf("results not preserved: %+v", got.Results)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no list received")
	}
}

func TestPublishFanOut(t *testing.T) {
	topic := NewTopic(logging.Nop(), nil)
	defer topic.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := topic.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	second, err := topic.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	topic.Publish(testList("list-2"))

	for name, ch := range map[string]<-chan *domain.RecommendationList{"first": first, "second": second} {
		select {
		case got := <-ch:
			if got.ID != "list-2" {
				t.Errorf("%s subscriber received %s, want list-2", name, got.ID)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%s subscriber received nothing", name)
		}
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	topic := NewTopic(logging.Nop(), nil)
	defer topic.Close()

	done := make(chan struct{})
	go func() {
		topic.Publish(testList("list-3"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

func TestStalledSubscriberDoesNotParkPublishes(t *testing.T) {
	topic := NewTopic(logging.Nop(), nil)
	defer topic.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribed but never reading: its queue fills and stays full.
	if _, err := topic.Subscribe(ctx); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	before := runtime.NumGoroutine()
	for i := 0; i < 100; i++ {
		topic.Publish(testList(fmt.Sprintf("list-%d", i)))
	}

	// Deliveries beyond the queue are dropped, so every publish completes;
	// give in-flight goroutines a moment to finish.
	deadline := time.Now().Add(2 * time.Second)
	after := runtime.NumGoroutine()
	for after > before+5 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
		after = runtime.NumGoroutine()
	}
	if after > before+5 {
		t.Fatalf("goroutines grew from %d to %d, publications parked on a stalled subscriber", before, after)
	}
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	topic := NewTopic(logging.Nop(), nil)
	defer topic.Close()

	ctx, cancel := context.WithCancel(context.Background())
	lists, err := topic.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	cancel()

	select {
	case _, open := <-lists:
		if open {
			t.Error("received a list after cancel, want closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
