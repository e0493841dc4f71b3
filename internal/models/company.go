// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is used when a tenant never set one.
const DefaultCurrency = "TRY"

// Company is the storefront owner's public profile. One row per tenant.
type Company struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	LogoURL      string    `json:"logo_url"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Website      string    `json:"website"`
	Instagram    string    `json:"instagram"`
	WorkingHours string    `json:"working_hours"`
	Currency     string    `json:"currency"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyInput is the upsert payload for company info.
type CompanyInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	LogoURL      string `json:"logo_url" validate:"max=2048"`
	Phone        string `json:"phone" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email,max=254"`
	Address      string `json:"address" validate:"max=500"`
	Website      string `json:"website" validate:"omitempty,url,max=2048"`
	Instagram    string `json:"instagram" validate:"max=100"`
	WorkingHours string `json:"working_hours" validate:"max=500"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
}

// Menu is the public storefront payload: company, visible categories with
// their available products, and products without a category.
type Menu struct {
	Company       *Company       `json:"company"`
	Categories    []MenuCategory `json:"categories"`
	Uncategorized []Product      `json:"uncategorized"`
}

// MenuCategory is a category with its products in display order.
type MenuCategory struct {
	Category
	Products []Product `json:"products"`
}
