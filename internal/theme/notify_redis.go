// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/anitoki/internal/platform/constants"
)

// RedisNotifier implements [Notifier] with one pub/sub channel per visitor,
// so every API replica sees every change.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisNotifier creates a Redis pub/sub notifier.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisNotifier{client: client, logger: logger}
}

// Publish sends state to the visitor's channel.
func (notifier *RedisNotifier) Publish(context context.Context, visitorID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis_theme_encode_failed: %w", err)
	}

	if err := notifier.client.Publish(context, eventsChannel(visitorID), payload).Err(); err != nil {
		return fmt.Errorf("redis_theme_publish_failed: %w", err)
	}
	return nil
}

/*
Subscribe listens on the visitor's channel.

The subscription is confirmed before returning, so no publish issued after
Subscribe returns is missed. Malformed messages are logged and skipped.
*/
func (notifier *RedisNotifier) Subscribe(context context.Context, visitorID string) (<-chan State, func(), error) {
	pubsub := notifier.client.Subscribe(context, eventsChannel(visitorID))
	if _, err := pubsub.Receive(context); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("redis_theme_subscribe_failed: %w", err)
	}

	messages := pubsub.Channel()
	states := make(chan State, 1)
	var once sync.Once
	cancel := func() {
		once.Do(func() { _ = pubsub.Close() })
	}

	go func() {
		defer close(states)
		defer cancel()

		for {
			select {
			case <-context.Done():
				return
			case message, ok := <-messages:
				if !ok {
					return
				}

				var state State
				if err := json.Unmarshal([]byte(message.Payload), &state); err != nil {
					notifier.logger.Warn("theme_event_decode_failed",
						slog.String("channel", message.Channel),
						slog.Any("error", err),
					)
					continue
				}

				select {
				case states <- state:
				case <-context.Done():
					return
				}
			}
		}
	}()

	return states, cancel, nil
}

func eventsChannel(visitorID string) string {
	return constants.RedisPrefixThemeEvents + visitorID
}
