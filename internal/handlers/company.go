// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"digimenu/internal/models"
)

// GetCompany returns the tenant's company profile, 404 when never saved.
func (a *Admin) GetCompany(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	c, err := a.company.Get(r.Context(), tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpsertCompany creates or replaces the tenant's company profile.
func (a *Admin) UpsertCompany(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}

	var in models.CompanyInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Website = strings.TrimSpace(in.Website)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := validateStruct(&in); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := a.company.Upsert(r.Context(), tenantID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
