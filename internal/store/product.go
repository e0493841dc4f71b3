// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"digimenu/internal/models"
)

// ProductStore manages menu products in the database.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// price is NUMERIC in the schema; cast so it scans into float64.
const productColumns = `id, tenant_id, category_id, name, description, price::float8,
	image_url, is_available, sort_order, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var categoryID uuid.NullUUID
	err := scanner.Scan(
		&p.ID, &p.TenantID, &categoryID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.IsAvailable, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.UUID
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()

	items := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, models.Storage("scan product", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Storage("list products", err)
	}
	return items, nil
}

// List returns the tenant's products in display order. A non-nil
// categoryID narrows the list to that category.
func (s *ProductStore) List(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE tenant_id = $1 AND ($2::uuid IS NULL OR category_id = $2)
		ORDER BY sort_order, name
	`, tenantID, nullUUID(categoryID))
	if err != nil {
		return nil, models.Storage("list products", err)
	}
	return scanProducts(rows)
}

// ListAvailable returns the tenant's available products for the public menu.
func (s *ProductStore) ListAvailable(ctx context.Context, tenantID uuid.UUID) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE tenant_id = $1 AND is_available = TRUE
		ORDER BY sort_order, name
	`, tenantID)
	if err != nil {
		return nil, models.Storage("list available products", err)
	}
	return scanProducts(rows)
}

// FindByID retrieves one of the tenant's products.
func (s *ProductStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("find product by id", err)
	}
	return p, nil
}

// Create inserts a product after checking its category belongs to the tenant.
func (s *ProductStore) Create(ctx context.Context, tenantID uuid.UUID, in models.ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, tenantID, in.CategoryID); err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (tenant_id, category_id, name, description, price, image_url, is_available, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		tenantID, nullUUID(in.CategoryID), in.Name, in.Description, in.Price,
		in.ImageURL, available, in.SortOrder,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, models.Storage("create product", err)
	}
	return p, nil
}

// Update replaces a product's fields.
func (s *ProductStore) Update(ctx context.Context, tenantID, id uuid.UUID, in models.ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, tenantID, in.CategoryID); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE products SET
			category_id = $1, name = $2, description = $3, price = $4, image_url = $5,
			is_available = COALESCE($6, is_available), sort_order = $7, updated_at = NOW()
		WHERE id = $8 AND tenant_id = $9
		RETURNING `+productColumns,
		nullUUID(in.CategoryID), in.Name, in.Description, in.Price, in.ImageURL,
		nullBool(in.IsAvailable), in.SortOrder, id, tenantID,
	)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("update product", err)
	}
	return p, nil
}

// Delete removes a product.
func (s *ProductStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return models.Storage("delete product", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *ProductStore) checkCategory(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	var ok bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND tenant_id = $2)`,
		*categoryID, tenantID,
	).Scan(&ok)
	if err != nil {
		return models.Storage("check product category", err)
	}
	if !ok {
		return models.NewValidationError("category_id", "category does not exist")
	}
	return nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
