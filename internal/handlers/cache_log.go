// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
)

const (
	defaultCacheLogLimit = 50
	maxCacheLogLimit     = 200
)

// CacheLog lists the tenant's recent resolved-theme cache invalidations.
func (a *Admin) CacheLog(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	if a.cacheLog == nil {
		writeMessage(w, http.StatusServiceUnavailable, "cache log is not available")
		return
	}

	limit := defaultCacheLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer", Field: "limit"})
			return
		}
		limit = min(n, maxCacheLogLimit)
	}

	entries, err := a.cacheLog.RecentEntries(r.Context(), tenantID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
