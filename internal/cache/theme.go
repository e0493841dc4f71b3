// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// theme.go provides a Valkey-backed cache of resolved themes. The public
// theme endpoints read from it so storefront polling skips the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"digimenu/internal/theme"
)

const (
	// themeKeyPrefix is the Valkey key prefix for resolved themes.
	themeKeyPrefix = "theme:resolved:"

	// themeGenPrefix prefixes the per-tenant invalidation counter. Sets are
	// conditional on it so a slow load cannot undo a newer invalidation.
	themeGenPrefix = "theme:gen:"

	// DefaultThemeTTL is how long a resolved theme stays cached.
	DefaultThemeTTL = 5 * time.Minute
)

// InvalidationLogger records cache invalidations. store.CacheLogStore
// satisfies it.
type InvalidationLogger interface {
	Log(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, action string)
}

// ThemeCache stores resolved themes per tenant in Valkey. Every failure is
// logged and treated as a miss.
type ThemeCache struct {
	client *redis.Client
	ttl    time.Duration
	log    InvalidationLogger
}

// NewThemeCache creates a theme cache backed by the given Valkey client.
// log may be nil.
func NewThemeCache(client *redis.Client, ttl time.Duration, log InvalidationLogger) *ThemeCache {
	if ttl == 0 {
		ttl = DefaultThemeTTL
	}
	return &ThemeCache{client: client, ttl: ttl, log: log}
}

// errStaleGeneration aborts a Set whose generation was overtaken.
var errStaleGeneration = errors.New("theme cache generation moved")

func themeKey(tenantID uuid.UUID) string {
	return themeKeyPrefix + tenantID.String()
}

func genKey(tenantID uuid.UUID) string {
	return themeGenPrefix + tenantID.String()
}

// Generation returns the tenant's invalidation counter. A tenant that was
// never invalidated is at generation zero.
func (c *ThemeCache) Generation(ctx context.Context, tenantID uuid.UUID) (uint64, bool) {
	gen, err := c.client.Get(ctx, genKey(tenantID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("theme cache generation error", "tenant_id", tenantID, "error", err)
		return 0, false
	}
	return gen, true
}

// Get returns the cached resolved theme for the tenant.
func (c *ThemeCache) Get(ctx context.Context, tenantID uuid.UUID) (*theme.Resolved, bool) {
	val, err := c.client.Get(ctx, themeKey(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("theme cache get error", "tenant_id", tenantID, "error", err)
		return nil, false
	}

	var r theme.Resolved
	if err := json.Unmarshal(val, &r); err != nil {
		slog.Warn("theme cache decode error", "tenant_id", tenantID, "error", err)
		return nil, false
	}
	return &r, true
}

// Set stores a resolved theme with the configured TTL, provided the
// tenant is still at generation gen. It returns false when an
// invalidation happened since gen was read. Other failures are logged
// and reported as true, since reloading would not help.
func (c *ThemeCache) Set(ctx context.Context, tenantID uuid.UUID, gen uint64, r *theme.Resolved) bool {
	val, err := json.Marshal(r)
	if err != nil {
		slog.Warn("theme cache encode error", "tenant_id", tenantID, "error", err)
		return true
	}

	gk := genKey(tenantID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, themeKey(tenantID), val, c.ttl)
			return nil
		})
		return err
	}, gk)

	switch {
	case err == nil:
		return true
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		slog.Debug("theme cache set skipped, invalidated during load", "tenant_id", tenantID)
		return false
	}
	slog.Warn("theme cache set error", "tenant_id", tenantID, "error", err)
	return true
}

// Invalidate drops the tenant's cached theme, advances its generation,
// and records why.
func (c *ThemeCache) Invalidate(ctx context.Context, tenantID, themeID uuid.UUID, action string) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(tenantID))
		pipe.Del(ctx, themeKey(tenantID))
		return nil
	})
	if err != nil {
		slog.Warn("theme cache invalidate error", "tenant_id", tenantID, "error", err)
	}
	slog.Debug("theme cache invalidated", "tenant_id", tenantID, "action", action)

	if c.log != nil {
		c.log.Log(ctx, tenantID, "theme", themeID, action)
	}
}
