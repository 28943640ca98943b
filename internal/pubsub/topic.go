// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package pubsub broadcasts newly generated recommendation lists to
// subscribers over an in-process Watermill topic. Publish never blocks on
// slow consumers; deliveries that cannot complete in time are dropped.
package pubsub

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/lfbraga/fitrec/internal/domain"
	"github.com/lfbraga/fitrec/internal/metrics"
)

// TopicRecommendations is the topic carrying generated lists.
const TopicRecommendations = "recommendations.generated"

// publishTimeout bounds how long a publication may wait on subscriber
// buffers before being dropped.
const publishTimeout = 250 * time.Millisecond

// subscriberBuffer is the per-subscriber queue depth.
const subscriberBuffer = 16

// Topic is a multi-consumer broadcast of recommendation lists.
type Topic struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewTopic creates the broadcast topic. Subscribers each get a bounded
// queue; there is no persistence, a list published before Subscribe is not
// replayed.
func NewTopic(logger zerolog.Logger, wmLogger watermill.LoggerAdapter) *Topic {
	if wmLogger == nil {
		wmLogger = watermill.NewStdLogger(false, false)
	}
	return &Topic{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: subscriberBuffer,
		}, wmLogger),
		logger: logger.With().Str("component", "pubsub").Logger(),
	}
}

// Publish broadcasts the list to all current subscribers without blocking
// the caller. If delivery cannot complete within the publish timeout the
// list is dropped and counted.
func (t *Topic) Publish(list *domain.RecommendationList) {
	payload, err := json.Marshal(list)
	if err != nil {
		t.logger.Error().Err(err).Str("list_id", list.ID).Msg("failed to encode list for publish")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)

	done := make(chan error, 1)
	go func() {
		done <- t.pubsub.Publish(TopicRecommendations, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.logger.Warn().Err(err).Str("list_id", list.ID).Msg("publish failed")
		}
	case <-time.After(publishTimeout):
		metrics.PublishDropped.Inc()
		t.logger.Debug().Str("list_id", list.ID).Msg("publish dropped, subscribers too slow")
	}
}

// Subscribe returns a channel of decoded lists. The channel closes when ctx
// is cancelled or the topic is closed. Messages that fail to decode are
// acked and skipped.
//
// The forwarding loop never blocks on the subscriber: a full queue drops the
// list, so a stalled consumer cannot park publications upstream.
func (t *Topic) Subscribe(ctx context.Context) (<-chan *domain.RecommendationList, error) {
	messages, err := t.pubsub.Subscribe(ctx, TopicRecommendations)
	if err != nil {
		return nil, err
	}

	out := make(chan *domain.RecommendationList, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range messages {
			var list domain.RecommendationList
			if err := json.Unmarshal(msg.Payload, &list); err != nil {
				t.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("failed to decode published list")
				msg.Ack()
				continue
			}
			msg.Ack()

			select {
			case out <- &list:
			case <-ctx.Done():
				return
			default:
				metrics.PublishDropped.Inc()
				t.logger.Debug().Str("list_id", list.ID).Msg("subscriber queue full, list dropped")
			}
		}
	}()

	return out, nil
}

// Close shuts the topic down and closes all subscriber channels.
func (t *Topic) Close() error {
	return t.pubsub.Close()
}
