// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"digimenu/internal/models"
	"digimenu/internal/store"
)

// reorderRequest is the body of the category reorder endpoint.
type reorderRequest struct {
	Items []store.ReorderItem `json:"items" validate:"required,min=1"`
}

// ListCategories returns all of the tenant's categories, hidden ones included.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	items, err := a.categories.List(r.Context(), tenantID, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// categoryInput decodes and validates a category payload.
func categoryInput(w http.ResponseWriter, r *http.Request) (models.CategoryInput, error) {
	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		return in, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in, validateStruct(&in)
}

// CreateCategory adds a category. Without sort_order it goes last.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	in, err := categoryInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.categories.Create(r.Context(), tenantID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory replaces a category's fields.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	in, err := categoryInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.categories.Update(r.Context(), tenantID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes a category. Its products stay, uncategorized.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	if err := a.categories.Delete(r.Context(), tenantID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCategories sets sort_order for several categories at once.
func (a *Admin) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, r, err)
		return
	}
	for _, item := range req.Items {
		if item.Order < 0 {
			writeError(w, r, models.NewValidationError("items", "order must be greater than or equal to 0"))
			return
		}
	}

	if err := a.categories.Reorder(r.Context(), tenantID, req.Items); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
