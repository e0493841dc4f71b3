// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// themeChannelPrefix is the pub/sub channel prefix for theme changes.
const themeChannelPrefix = "theme:changed:"

// Notifier fans theme change events out over Valkey pub/sub, so every
// instance's subscribers hear about an activation on any instance.
type Notifier struct {
	client *redis.Client
}

// NewNotifier creates a Notifier on the given Valkey client.
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

func themeChannel(tenantID uuid.UUID) string {
	return themeChannelPrefix + tenantID.String()
}

// Publish announces that the tenant's theme changed. Failures are logged.
func (n *Notifier) Publish(ctx context.Context, tenantID uuid.UUID) {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := n.client.Publish(ctx, themeChannel(tenantID), stamp).Err(); err != nil {
		slog.Warn("theme change publish error", "tenant_id", tenantID, "error", err)
	}
}

// Subscribe listens for the tenant's theme changes until ctx is done or the
// returned stop func is called. Bursts of changes coalesce into one signal.
func (n *Notifier) Subscribe(ctx context.Context, tenantID uuid.UUID) (<-chan struct{}, func(), error) {
	pubsub := n.client.Subscribe(ctx, themeChannel(tenantID))

	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe theme changes: %w", err)
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()

	stop := func() { pubsub.Close() }
	return events, stop, nil
}
