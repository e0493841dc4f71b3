// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"digimenu/internal/cache"
)

const defaultVisitDays = 7

// VisitorStats returns the visit total and a daily series for the last
// ?days= days (1..90, default 7).
func (a *Admin) VisitorStats(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	if a.visits == nil {
		writeMessage(w, http.StatusServiceUnavailable, "visitor statistics are not available")
		return
	}

	days := defaultVisitDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > cache.MaxVisitDays {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "days must be between 1 and " + strconv.Itoa(cache.MaxVisitDays),
				Field: "days",
			})
			return
		}
		days = n
	}

	stats, err := a.visits.Stats(r.Context(), tenantID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
