// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"digimenu/internal/metrics"
	"digimenu/internal/models"
)

// Resolved is the storefront view of a tenant's theme: the effective
// configuration, its flattened tokens, and a strong validator for polling.
type Resolved struct {
	Theme     *models.ThemeConfiguration `json:"theme"`
	Tokens    Tokens                     `json:"tokens"`
	IsDefault bool                       `json:"is_default"`
	ETag      string                     `json:"etag"`
}

// Getter reads a tenant's current configuration: the active one, or the
// most recently created one when none is active.
type Getter interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.ThemeConfiguration, error)
}

const (
	// loadTimeout bounds a shared backend read. It is detached from the
	// caller's context so one disconnecting client cannot fail the others.
	loadTimeout = 5 * time.Second

	// maxLoadAttempts caps reloads when the tenant is invalidated mid-load.
	maxLoadAttempts = 3
)

// Resolver serves resolved themes to the storefront. It never fails: any
// absence or backend error yields the compiled-in default.
type Resolver struct {
	getter Getter
	cache  Cache
	group  singleflight.Group
}

// NewResolver creates a Resolver. cache may be nil.
func NewResolver(getter Getter, cache Cache) *Resolver {
	return &Resolver{getter: getter, cache: cache}
}

// Resolved returns the tenant's resolved theme. Concurrent misses for the
// same tenant share one backend read.
func (r *Resolver) Resolved(ctx context.Context, tenantID uuid.UUID) *Resolved {
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, tenantID); ok {
			metrics.ThemeCacheResults.WithLabelValues("hit").Inc()
			return cached
		}
		metrics.ThemeCacheResults.WithLabelValues("miss").Inc()
	}

	v, _, _ := r.group.Do(tenantID.String(), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return r.loadAndCache(loadCtx, tenantID), nil
	})
	return v.(*Resolved)
}

// loadAndCache reads the tenant's theme and caches it. A load overtaken by
// an invalidation is discarded and read again.
func (r *Resolver) loadAndCache(ctx context.Context, tenantID uuid.UUID) *Resolved {
	if r.cache == nil {
		res, _ := r.load(ctx, tenantID)
		return res
	}

	for attempt := 1; ; attempt++ {
		gen, genOK := r.cache.Generation(ctx, tenantID)
		res, cacheable := r.load(ctx, tenantID)
		if !cacheable || !genOK {
			return res
		}
		if r.cache.Set(ctx, tenantID, gen, res) || attempt == maxLoadAttempts {
			return res
		}
		slog.Debug("theme invalidated during load, reloading", "tenant_id", tenantID, "attempt", attempt)
	}
}

// load reads the configuration and resolves it. The bool reports whether
// the result reflects stored state and may be cached.
func (r *Resolver) load(ctx context.Context, tenantID uuid.UUID) (*Resolved, bool) {
	cfg, err := r.getter.Get(ctx, tenantID)
	if err != nil {
		metrics.ThemeDefaultFallbacksTotal.Inc()
		if IsNotFound(err) {
			slog.Debug("no theme for tenant, using default", "tenant_id", tenantID)
			// Absence is a stable answer and is cached like any other.
			return NewResolved(nil), true
		}
		slog.Error("resolve theme failed, using default", "tenant_id", tenantID, "error", err)
		return NewResolved(nil), false
	}

	if !cfg.IsActive {
		metrics.ThemeRepairsTotal.WithLabelValues(metrics.RepairImplicit).Inc()
		slog.Warn("tenant has no active theme, resolving most recent",
			"tenant_id", tenantID, "theme_id", cfg.ID)
	}
	return NewResolved(cfg), true
}

// NewResolved builds a Resolved for cfg, or for the default when cfg is nil.
func NewResolved(cfg *models.ThemeConfiguration) *Resolved {
	res := &Resolved{Theme: cfg}
	if cfg == nil {
		res.Theme = DefaultConfiguration()
		res.IsDefault = true
	}
	res.Tokens = Resolve(res.Theme)
	res.ETag = fmt.Sprintf(`"%s-%s"`, res.Theme.ID.String()[:8], res.Tokens.Fingerprint())
	return res
}
