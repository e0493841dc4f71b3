// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"digimenu/internal/models"
	"digimenu/internal/slug"
)

// CategoryStore manages menu categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, tenant_id, name, slug, description, sort_order, is_visible, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.Description,
		&c.SortOrder, &c.IsVisible, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the tenant's categories ordered by sort_order, with product
// counts. With visibleOnly set, hidden categories are skipped.
func (s *CategoryStore) List(ctx context.Context, tenantID uuid.UUID, visibleOnly bool) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.tenant_id, c.name, c.slug, c.description, c.sort_order,
		       c.is_visible, c.created_at, c.updated_at,
		       COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.tenant_id = $1 AND (c.is_visible OR NOT $2)
		GROUP BY c.id
		ORDER BY c.sort_order, c.name
	`, tenantID, visibleOnly)
	if err != nil {
		return nil, models.Storage("list categories", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.Description,
			&c.SortOrder, &c.IsVisible, &c.CreatedAt, &c.UpdatedAt,
			&c.ProductCount,
		)
		if err != nil {
			return nil, models.Storage("scan category", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Storage("list categories", err)
	}
	return items, nil
}

// FindByID retrieves one of the tenant's categories.
func (s *CategoryStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("find category by id", err)
	}
	return c, nil
}

// Create inserts a new category. The slug is derived from the name and made
// unique within the tenant. Without a sort order the category goes last.
func (s *CategoryStore) Create(ctx context.Context, tenantID uuid.UUID, in models.CategoryInput) (*models.Category, error) {
	catSlug, err := s.uniqueSlug(ctx, tenantID, in.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	order := 0
	if in.SortOrder != nil {
		order = *in.SortOrder
	} else if order, err = s.NextSortOrder(ctx, tenantID); err != nil {
		return nil, err
	}

	visible := true
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (tenant_id, name, slug, description, sort_order, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		tenantID, in.Name, catSlug, in.Description, order, visible,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, models.Storage("create category", err)
	}
	return c, nil
}

// Update replaces a category's fields. A renamed category gets a new slug.
func (s *CategoryStore) Update(ctx context.Context, tenantID, id uuid.UUID, in models.CategoryInput) (*models.Category, error) {
	current, err := s.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	catSlug := current.Slug
	if in.Name != current.Name {
		if catSlug, err = s.uniqueSlug(ctx, tenantID, in.Name, id); err != nil {
			return nil, err
		}
	}
	order := current.SortOrder
	if in.SortOrder != nil {
		order = *in.SortOrder
	}
	visible := current.IsVisible
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, sort_order = $4,
			is_visible = $5, updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7
		RETURNING `+categoryColumns,
		in.Name, catSlug, in.Description, order, visible, id, tenantID,
	)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("update category", err)
	}
	return c, nil
}

// Delete removes a category. Its products become uncategorized (ON DELETE SET NULL).
func (s *CategoryStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return models.Storage("delete category", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ReorderItem represents a single item in a reorder request.
type ReorderItem struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// Reorder updates sort_order for several categories in a transaction. An id
// that is unknown or owned by another tenant aborts the whole batch.
func (s *CategoryStore) Reorder(ctx context.Context, tenantID uuid.UUID, items []ReorderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Storage("reorder categories", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE categories SET sort_order = $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4`)
	if err != nil {
		return models.Storage("reorder categories", fmt.Errorf("prepare reorder: %w", err))
	}
	defer stmt.Close()

	now := time.Now()
	for _, item := range items {
		result, err := stmt.ExecContext(ctx, item.Order, now, item.ID, tenantID)
		if err != nil {
			return models.Storage("reorder categories", fmt.Errorf("reorder category %s: %w", item.ID, err))
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return models.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Storage("reorder categories", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// NextSortOrder returns the next sort_order value for the tenant.
func (s *CategoryStore) NextSortOrder(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM categories WHERE tenant_id = $1`, tenantID).Scan(&maxOrder)
	if err != nil {
		return 0, models.Storage("next category sort order", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}

// uniqueSlug derives a slug from name and appends -2, -3, ... until no other
// category of the tenant (except exceptID) uses it.
func (s *CategoryStore) uniqueSlug(ctx context.Context, tenantID uuid.UUID, name string, exceptID uuid.UUID) (string, error) {
	base := slug.Generate(name)
	if base == "" {
		base = "category"
	}

	candidate := base
	for i := 2; ; i++ {
		var taken bool
		err := s.db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM categories WHERE tenant_id = $1 AND slug = $2 AND id <> $3)
		`, tenantID, candidate, exceptID).Scan(&taken)
		if err != nil {
			return "", models.Storage("check category slug", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
