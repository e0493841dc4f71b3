// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus instruments used across digimenu.
// All collectors are registered with the default registry, so mounting
// promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Repair kinds recorded by ThemeRepairsTotal.
const (
	RepairImplicit       = "implicit"
	RepairMultipleActive = "multiple_active"
)

var (
	ThemeActivationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "digimenu_theme_activations_total",
			Help: "Cumulative number of successful theme activations.",
		})

	ThemeRepairsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digimenu_theme_repairs_total",
			Help: "Tenants found with zero or several active themes, by kind.",
		}, []string{"kind"})

	ThemeDefaultFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "digimenu_theme_default_fallbacks_total",
			Help: "Resolved themes served from the compiled-in default.",
		})

	ThemeCacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digimenu_theme_cache_results_total",
			Help: "Resolved theme cache lookups, by result (hit or miss).",
		}, []string{"result"})

	VisitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "digimenu_storefront_visits_total",
			Help: "Storefront visits recorded across all tenants.",
		})
)

func init() {
	prometheus.MustRegister(
		ThemeActivationsTotal,
		ThemeRepairsTotal,
		ThemeDefaultFallbacksTotal,
		ThemeCacheResults,
		VisitsTotal,
	)
}
