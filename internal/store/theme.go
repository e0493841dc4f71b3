// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"digimenu/internal/models"
)

// ThemeStore handles all theme configuration database operations.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme configuration queries.
const themeColumns = `id, tenant_id, name, is_active, colors, typography, layout,
	product_card, product_grid, created_at, updated_at`

// scanTheme scans a theme configuration row from the result set.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.ThemeConfiguration, error) {
	var t models.ThemeConfiguration
	err := scanner.Scan(
		&t.ID, &t.TenantID, &t.Name, &t.IsActive,
		&t.Colors, &t.Typography, &t.Layout, &t.ProductCard, &t.ProductGrid,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// lockTenant takes a transaction-scoped advisory lock for the tenant so
// concurrent creates and activations of one tenant run one after another.
func lockTenant(ctx context.Context, tx *sql.Tx, tenantID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, tenantID.String())
	return err
}

// Get returns the tenant's active configuration, or the most recently
// created one when none is active.
func (s *ThemeStore) Get(ctx context.Context, tenantID uuid.UUID) (*models.ThemeConfiguration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+themeColumns+`
		FROM theme_configurations
		WHERE tenant_id = $1
		ORDER BY is_active DESC, created_at DESC, id DESC
		LIMIT 1
	`, tenantID)
	t, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("get theme", err)
	}
	return t, nil
}

// ListByTenant returns every configuration of the tenant, newest first.
func (s *ThemeStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.ThemeConfiguration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+themeColumns+`
		FROM theme_configurations
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC
	`, tenantID)
	if err != nil {
		return nil, models.Storage("list themes", err)
	}
	defer rows.Close()

	items := []models.ThemeConfiguration{}
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, models.Storage("scan theme", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Storage("list themes", err)
	}
	return items, nil
}

// FindByID retrieves a configuration by its UUID.
func (s *ThemeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ThemeConfiguration, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM theme_configurations WHERE id = $1`, id)
	t, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("find theme by id", err)
	}
	return t, nil
}

// Create inserts a configuration. The tenant's first configuration is
// inserted active.
func (s *ThemeStore) Create(ctx context.Context, tenantID uuid.UUID, in models.ThemeInput) (*models.ThemeConfiguration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, models.Storage("create theme", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	if err := lockTenant(ctx, tx, tenantID); err != nil {
		return nil, models.Storage("create theme", fmt.Errorf("lock tenant: %w", err))
	}

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM theme_configurations WHERE tenant_id = $1`, tenantID,
	).Scan(&existing); err != nil {
		return nil, models.Storage("create theme", fmt.Errorf("count themes: %w", err))
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO theme_configurations
			(tenant_id, name, is_active, colors, typography, layout, product_card, product_grid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+themeColumns,
		tenantID, in.Name, existing == 0,
		in.Colors, in.Typography, in.Layout, in.ProductCard, in.ProductGrid,
	)
	t, err := scanTheme(row)
	if err != nil {
		return nil, models.Storage("create theme", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, models.Storage("create theme", fmt.Errorf("commit: %w", err))
	}
	return t, nil
}

// Update merges patch into the stored configuration and bumps updated_at.
func (s *ThemeStore) Update(ctx context.Context, id uuid.UUID, patch models.ThemePatch) (*models.ThemeConfiguration, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, models.Storage("update theme", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM theme_configurations WHERE id = $1 FOR UPDATE`, id)
	current, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("update theme", err)
	}

	patch.Apply(current)

	row = tx.QueryRowContext(ctx, `
		UPDATE theme_configurations SET
			name = $1, colors = $2, typography = $3, layout = $4,
			product_card = $5, product_grid = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+themeColumns,
		current.Name, current.Colors, current.Typography, current.Layout,
		current.ProductCard, current.ProductGrid, id,
	)
	updated, err := scanTheme(row)
	if err != nil {
		return nil, models.Storage("update theme", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, models.Storage("update theme", fmt.Errorf("commit: %w", err))
	}
	return updated, nil
}

// Activate sets a theme as the tenant's active one and deactivates all
// others in a single transaction.
func (s *ThemeStore) Activate(ctx context.Context, tenantID, themeID uuid.UUID) (*models.ThemeConfiguration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, models.Storage("activate theme", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	if err := lockTenant(ctx, tx, tenantID); err != nil {
		return nil, models.Storage("activate theme", fmt.Errorf("lock tenant: %w", err))
	}

	var owner uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT tenant_id FROM theme_configurations WHERE id = $1`, themeID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != tenantID) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("activate theme", err)
	}

	// Deactivate all other themes of the tenant.
	if _, err := tx.ExecContext(ctx, `
		UPDATE theme_configurations SET is_active = FALSE, updated_at = NOW()
		WHERE tenant_id = $1 AND is_active = TRUE AND id <> $2
	`, tenantID, themeID); err != nil {
		return nil, models.Storage("activate theme", fmt.Errorf("deactivate themes: %w", err))
	}

	// Activate the target theme.
	row := tx.QueryRowContext(ctx, `
		UPDATE theme_configurations SET is_active = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+themeColumns, themeID)
	t, err := scanTheme(row)
	if err != nil {
		return nil, models.Storage("activate theme", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, models.Storage("activate theme", fmt.Errorf("commit: %w", err))
	}
	return t, nil
}
