// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme implements per-tenant theme configuration: the activation
// service that keeps a single active theme per tenant, and the application
// layer that turns a configuration into flattened style tokens.
package theme

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"digimenu/internal/metrics"
	"digimenu/internal/models"
)

// Repository persists theme configurations. Activate must deactivate every
// configuration of the tenant and activate themeID as one unit where the
// backend supports it.
type Repository interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.ThemeConfiguration, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.ThemeConfiguration, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ThemeConfiguration, error)
	Create(ctx context.Context, tenantID uuid.UUID, in models.ThemeInput) (*models.ThemeConfiguration, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ThemePatch) (*models.ThemeConfiguration, error)
	Activate(ctx context.Context, tenantID, themeID uuid.UUID) (*models.ThemeConfiguration, error)
}

// Cache stores resolved themes per tenant. Implementations are best-effort:
// a failing cache must behave like a miss.
//
// Every Invalidate advances the tenant's generation. Set stores r only if
// the generation still equals gen, and returns false when it moved.
type Cache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*Resolved, bool)
	Generation(ctx context.Context, tenantID uuid.UUID) (gen uint64, ok bool)
	Set(ctx context.Context, tenantID uuid.UUID, gen uint64, r *Resolved) bool
	Invalidate(ctx context.Context, tenantID, themeID uuid.UUID, action string)
}

// Notifier announces that a tenant's resolved theme changed.
type Notifier interface {
	Publish(ctx context.Context, tenantID uuid.UUID)
}

// Service enforces the single-active-theme invariant on top of a
// Repository and keeps the cache and subscribers in step with changes.
type Service struct {
	repo     Repository
	cache    Cache
	notifier Notifier
	locks    tenantLocks
}

// NewService creates a Service. cache and notifier may be nil.
func NewService(repo Repository, cache Cache, notifier Notifier) *Service {
	return &Service{repo: repo, cache: cache, notifier: notifier}
}

// List returns every configuration of the tenant, newest first.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]models.ThemeConfiguration, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// Create validates and stores a configuration. The tenant's first
// configuration is created active.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, in models.ThemeInput) (*models.ThemeConfiguration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, tenantID, in)
	if err != nil {
		return nil, err
	}

	if created.IsActive {
		s.changed(ctx, tenantID, created.ID, "create")
	}
	return created, nil
}

// Update applies a partial update to a configuration owned by tenantID.
// A configuration of another tenant is reported as not found.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, patch models.ThemePatch) (*models.ThemeConfiguration, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.TenantID != tenantID {
		return nil, models.ErrNotFound
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	// An inactive theme can still be implicitly current, so every edit invalidates.
	s.changed(ctx, tenantID, updated.ID, "update")
	return updated, nil
}

// Activate makes themeID the tenant's only active configuration.
// Activations for one tenant are serialized in process; the repository
// makes the switch atomic across processes.
func (s *Service) Activate(ctx context.Context, tenantID, themeID uuid.UUID) (*models.ThemeConfiguration, error) {
	unlock := s.locks.lock(tenantID)
	defer unlock()

	activated, err := s.repo.Activate(ctx, tenantID, themeID)
	if err != nil {
		return nil, err
	}

	metrics.ThemeActivationsTotal.Inc()
	slog.Info("theme activated", "tenant_id", tenantID, "theme_id", themeID)
	s.changed(ctx, tenantID, themeID, "activate")
	return activated, nil
}

// Get returns the tenant's current configuration.
//
// With no active configuration the most recently created one is treated as
// implicitly active. With several active configurations the most recently
// created active one wins and the others are deactivated. Returns
// models.ErrNotFound only when the tenant has no configurations.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (*models.ThemeConfiguration, error) {
	list, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	current, state := pickCurrent(list)
	switch state {
	case stateEmpty:
		return nil, models.ErrNotFound
	case stateImplicit:
		metrics.ThemeRepairsTotal.WithLabelValues(metrics.RepairImplicit).Inc()
		slog.Warn("tenant has no active theme, using most recent",
			"tenant_id", tenantID, "theme_id", current.ID)
		return current, nil
	case stateConflict:
		return s.repair(ctx, &models.ConflictError{
			TenantID: tenantID,
			WinnerID: current.ID,
			Active:   countActive(list),
		}, current)
	}
	return current, nil
}

// repair re-runs activation for the winner of a multiple-active conflict.
// The conflict itself is never surfaced; if the repair write fails the
// winner is still returned so rendering stays deterministic.
func (s *Service) repair(ctx context.Context, conflict *models.ConflictError, winner *models.ThemeConfiguration) (*models.ThemeConfiguration, error) {
	metrics.ThemeRepairsTotal.WithLabelValues(metrics.RepairMultipleActive).Inc()
	tenantID := conflict.TenantID
	slog.Warn("repairing theme state", "error", conflict, "tenant_id", tenantID, "winner", winner.ID)

	unlock := s.locks.lock(tenantID)
	defer unlock()

	repaired, err := s.repo.Activate(ctx, tenantID, winner.ID)
	if err != nil {
		slog.Error("theme repair failed", "tenant_id", tenantID, "theme_id", winner.ID, "error", err)
		return winner, nil
	}
	s.changed(ctx, tenantID, winner.ID, "repair")
	return repaired, nil
}

func (s *Service) changed(ctx context.Context, tenantID, themeID uuid.UUID, action string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID, themeID, action)
	}
	if s.notifier != nil {
		s.notifier.Publish(ctx, tenantID)
	}
}

type currentState int

const (
	stateEmpty currentState = iota
	stateActive
	stateImplicit
	stateConflict
)

// pickCurrent chooses the current configuration from a list ordered newest
// first. The first active entry wins; with none active the first entry is
// implicitly current.
func pickCurrent(list []models.ThemeConfiguration) (*models.ThemeConfiguration, currentState) {
	if len(list) == 0 {
		return nil, stateEmpty
	}

	var winner *models.ThemeConfiguration
	active := 0
	for i := range list {
		if !list[i].IsActive {
			continue
		}
		active++
		if winner == nil {
			winner = &list[i]
		}
	}

	switch {
	case active == 0:
		return &list[0], stateImplicit
	case active > 1:
		return winner, stateConflict
	}
	return winner, stateActive
}

func countActive(list []models.ThemeConfiguration) int {
	n := 0
	for i := range list {
		if list[i].IsActive {
			n++
		}
	}
	return n
}

// IsNotFound reports whether err means the tenant or theme does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
