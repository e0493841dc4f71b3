// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a single menu item. ImageURL is an opaque string produced by
// the upload endpoint or supplied by the client.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url"`
	IsAvailable bool       `json:"is_available"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Price       float64    `json:"price" validate:"gte=0"`
	ImageURL    string     `json:"image_url" validate:"max=2048"`
	IsAvailable *bool      `json:"is_available"`
	SortOrder   int        `json:"sort_order" validate:"gte=0"`
}
