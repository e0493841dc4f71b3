// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"digimenu/internal/models"
)

// CompanyStore manages the per-tenant company profile.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore returns a new CompanyStore backed by the given database.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

const companyColumns = `tenant_id, name, description, logo_url, phone, email, address,
	website, instagram, working_hours, currency, updated_at`

func scanCompany(scanner interface{ Scan(...any) error }) (*models.Company, error) {
	var c models.Company
	err := scanner.Scan(
		&c.TenantID, &c.Name, &c.Description, &c.LogoURL, &c.Phone, &c.Email, &c.Address,
		&c.Website, &c.Instagram, &c.WorkingHours, &c.Currency, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Currency = strings.TrimSpace(c.Currency)
	return &c, nil
}

// Get returns the tenant's company profile.
func (s *CompanyStore) Get(ctx context.Context, tenantID uuid.UUID) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE tenant_id = $1`, tenantID)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Storage("get company", err)
	}
	return c, nil
}

// Upsert creates or replaces the tenant's company profile.
func (s *CompanyStore) Upsert(ctx context.Context, tenantID uuid.UUID, in models.CompanyInput) (*models.Company, error) {
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO companies
			(tenant_id, name, description, logo_url, phone, email, address,
			 website, instagram, working_hours, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (tenant_id)
		DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description,
			logo_url = EXCLUDED.logo_url, phone = EXCLUDED.phone, email = EXCLUDED.email,
			address = EXCLUDED.address, website = EXCLUDED.website,
			instagram = EXCLUDED.instagram, working_hours = EXCLUDED.working_hours,
			currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at
		RETURNING `+companyColumns,
		tenantID, in.Name, in.Description, in.LogoURL, in.Phone, in.Email, in.Address,
		in.Website, in.Instagram, in.WorkingHours, currency,
	)
	c, err := scanCompany(row)
	if err != nil {
		return nil, models.Storage("upsert company", err)
	}
	return c, nil
}
