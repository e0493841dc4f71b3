// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the digimenu JSON API.
// Handlers are grouped by audience (admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"context"
	"io"

	"github.com/google/uuid"

	"digimenu/internal/cache"
	"digimenu/internal/models"
	"digimenu/internal/store"
	"digimenu/internal/theme"
)

// ThemeService is the theme activation service used by the admin API.
type ThemeService interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]models.ThemeConfiguration, error)
	Create(ctx context.Context, tenantID uuid.UUID, in models.ThemeInput) (*models.ThemeConfiguration, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch models.ThemePatch) (*models.ThemeConfiguration, error)
	Activate(ctx context.Context, tenantID, themeID uuid.UUID) (*models.ThemeConfiguration, error)
	Get(ctx context.Context, tenantID uuid.UUID) (*models.ThemeConfiguration, error)
}

// ThemeResolver returns the storefront view of a tenant's theme.
type ThemeResolver interface {
	Resolved(ctx context.Context, tenantID uuid.UUID) *theme.Resolved
}

// ThemeSubscriber delivers a signal whenever a tenant's theme changes.
// The returned func releases the subscription.
type ThemeSubscriber interface {
	Subscribe(ctx context.Context, tenantID uuid.UUID) (<-chan struct{}, func(), error)
}

// CategoryRepository persists menu categories.
type CategoryRepository interface {
	List(ctx context.Context, tenantID uuid.UUID, visibleOnly bool) ([]models.Category, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, tenantID uuid.UUID, in models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, in models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Reorder(ctx context.Context, tenantID uuid.UUID, items []store.ReorderItem) error
}

// ProductRepository persists menu products.
type ProductRepository interface {
	List(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) ([]models.Product, error)
	ListAvailable(ctx context.Context, tenantID uuid.UUID) ([]models.Product, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, tenantID uuid.UUID, in models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, in models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CompanyRepository persists the per-tenant company profile.
type CompanyRepository interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.Company, error)
	Upsert(ctx context.Context, tenantID uuid.UUID, in models.CompanyInput) (*models.Company, error)
}

// VisitCounter records storefront visits and reports them.
type VisitCounter interface {
	Record(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Stats(ctx context.Context, tenantID uuid.UUID, days int) (*cache.VisitorStats, error)
}

// ObjectStorage stores uploaded images.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	ExtractKey(rawURL string) (string, bool)
}

// CacheLogReader lists recent resolved-theme cache invalidations.
type CacheLogReader interface {
	RecentEntries(ctx context.Context, tenantID uuid.UUID, limit int) ([]store.CacheLogEntry, error)
}
