// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"digimenu/internal/models"
)

// MemoryThemeStore keeps theme configurations in process memory. It has no
// transactions, so concurrent activations must be serialized by the caller.
// It backs the service and handler tests.
type MemoryThemeStore struct {
	mu     sync.Mutex
	themes map[uuid.UUID]*memoryTheme
	seq    int64
	now    func() time.Time
}

type memoryTheme struct {
	cfg models.ThemeConfiguration
	seq int64
}

// NewMemoryThemeStore creates an empty MemoryThemeStore.
func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{
		themes: make(map[uuid.UUID]*memoryTheme),
		now:    time.Now,
	}
}

// Put stores cfg as-is, bypassing validation and the active flag rules.
// A zero ID is replaced with a new one. Tests use it to seed degraded states.
func (s *MemoryThemeStore) Put(cfg models.ThemeConfiguration) models.ThemeConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = s.now()
	}
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = cfg.CreatedAt
	}
	s.seq++
	s.themes[cfg.ID] = &memoryTheme{cfg: cfg, seq: s.seq}
	return cfg
}

// sorted returns the tenant's themes newest first. Callers hold s.mu.
func (s *MemoryThemeStore) sorted(tenantID uuid.UUID) []*memoryTheme {
	var list []*memoryTheme
	for _, t := range s.themes {
		if t.cfg.TenantID == tenantID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.cfg.CreatedAt.Equal(b.cfg.CreatedAt) {
			return a.cfg.CreatedAt.After(b.cfg.CreatedAt)
		}
		return a.seq > b.seq
	})
	return list
}

// Get returns the tenant's active configuration, or the most recently
// created one when none is active.
func (s *MemoryThemeStore) Get(_ context.Context, tenantID uuid.UUID) (*models.ThemeConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.sorted(tenantID)
	if len(list) == 0 {
		return nil, models.ErrNotFound
	}
	for _, t := range list {
		if t.cfg.IsActive {
			cfg := t.cfg
			return &cfg, nil
		}
	}
	cfg := list[0].cfg
	return &cfg, nil
}

// ListByTenant returns every configuration of the tenant, newest first.
func (s *MemoryThemeStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]models.ThemeConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.sorted(tenantID)
	items := make([]models.ThemeConfiguration, 0, len(list))
	for _, t := range list {
		items = append(items, t.cfg)
	}
	return items, nil
}

// FindByID retrieves a configuration by ID.
func (s *MemoryThemeStore) FindByID(_ context.Context, id uuid.UUID) (*models.ThemeConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.themes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cfg := t.cfg
	return &cfg, nil
}

// Create stores a new configuration. The tenant's first one is active.
func (s *MemoryThemeStore) Create(_ context.Context, tenantID uuid.UUID, in models.ThemeInput) (*models.ThemeConfiguration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cfg := models.ThemeConfiguration{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        in.Name,
		IsActive:    len(s.sorted(tenantID)) == 0,
		Colors:      in.Colors,
		Typography:  in.Typography,
		Layout:      in.Layout,
		ProductCard: in.ProductCard,
		ProductGrid: in.ProductGrid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.seq++
	s.themes[cfg.ID] = &memoryTheme{cfg: cfg, seq: s.seq}
	return &cfg, nil
}

// Update merges patch into the stored configuration.
func (s *MemoryThemeStore) Update(_ context.Context, id uuid.UUID, patch models.ThemePatch) (*models.ThemeConfiguration, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.themes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	patch.Apply(&t.cfg)
	t.cfg.UpdatedAt = s.now()
	cfg := t.cfg
	return &cfg, nil
}

// Activate deactivates every configuration of the tenant, then activates
// themeID.
func (s *MemoryThemeStore) Activate(_ context.Context, tenantID, themeID uuid.UUID) (*models.ThemeConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.themes[themeID]
	if !ok || target.cfg.TenantID != tenantID {
		return nil, models.ErrNotFound
	}

	now := s.now()
	for _, t := range s.themes {
		if t.cfg.TenantID == tenantID && t.cfg.IsActive && t != target {
			t.cfg.IsActive = false
			t.cfg.UpdatedAt = now
		}
	}
	target.cfg.IsActive = true
	target.cfg.UpdatedAt = now
	cfg := target.cfg
	return &cfg, nil
}
