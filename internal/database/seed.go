// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"digimenu/internal/theme"
)

// DemoTenantID is the tenant seeded in development so the storefront has
// something to render before any admin logs in.
var DemoTenantID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// Seed populates the database with a demo tenant: company info, the default
// theme (active), one category, and two products. It is a no-op if the demo
// tenant already has a company row.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies WHERE tenant_id = $1", DemoTenantID).Scan(&count); err != nil {
		return fmt.Errorf("seed check companies: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO companies (tenant_id, name, description, working_hours)
		VALUES ($1, $2, $3, $4)
	`, DemoTenantID, "Demo Bistro", "A sample restaurant for local development.", "09:00-23:00"); err != nil {
		return fmt.Errorf("seed insert company: %w", err)
	}

	def := theme.DefaultConfiguration()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO theme_configurations (tenant_id, name, is_active, colors, typography, layout, product_card, product_grid)
		VALUES ($1, $2, TRUE, $3, $4, $5, $6, $7)
	`, DemoTenantID, def.Name, def.Colors, def.Typography, def.Layout, def.ProductCard, def.ProductGrid); err != nil {
		return fmt.Errorf("seed insert theme: %w", err)
	}

	var categoryID uuid.UUID
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO categories (tenant_id, name, slug, sort_order)
		VALUES ($1, 'Starters', 'starters', 0)
		RETURNING id
	`, DemoTenantID).Scan(&categoryID); err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	for i, p := range []struct {
		name  string
		price float64
	}{
		{"Lentil Soup", 95},
		{"Hummus Plate", 120},
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (tenant_id, category_id, name, price, sort_order)
			VALUES ($1, $2, $3, $4, $5)
		`, DemoTenantID, categoryID, p.name, p.price, i); err != nil {
			return fmt.Errorf("seed insert product: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo tenant", "tenant_id", DemoTenantID)
	return nil
}
