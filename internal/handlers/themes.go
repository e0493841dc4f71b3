// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"digimenu/internal/models"
)

// ListThemes returns every theme configuration of the tenant, newest first.
func (a *Admin) ListThemes(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	list, err := a.themes.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.ThemeConfiguration{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CurrentTheme returns the tenant's current configuration. Unlike the
// public endpoint this reports absence as 404 instead of the default.
func (a *Admin) CurrentTheme(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	cfg, err := a.themes.Get(r.Context(), tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// CreateTheme stores a new configuration. The tenant's first one is active.
func (a *Admin) CreateTheme(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	var in models.ThemeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.themes.Create(r.Context(), tenantID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTheme merges a partial update group by group.
func (a *Admin) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	var patch models.ThemePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.themes.Update(r.Context(), tenantID, id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ActivateTheme makes the configuration the tenant's only active one.
func (a *Admin) ActivateTheme(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "id")
	if !ok {
		return
	}

	activated, err := a.themes.Activate(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activated)
}
