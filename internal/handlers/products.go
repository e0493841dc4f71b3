// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"digimenu/internal/models"
)

// ListProducts returns the tenant's products, optionally narrowed with
// ?category_id=.
func (a *Admin) ListProducts(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id", Field: "category_id"})
			return
		}
		categoryID = &id
	}

	items, err := a.products.List(r.Context(), tenantID, categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetProduct returns a single product.
func (a *Admin) GetProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	p, err := a.products.FindByID(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func productInput(w http.ResponseWriter, r *http.Request) (models.ProductInput, error) {
	var in models.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		return in, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in, validateStruct(&in)
}

// CreateProduct adds a product. New products are available unless the
// payload says otherwise.
func (a *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	in, err := productInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.products.Create(r.Context(), tenantID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct replaces a product's fields.
func (a *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	in, err := productInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.products.Update(r.Context(), tenantID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product.
func (a *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	if err := a.products.Delete(r.Context(), tenantID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
