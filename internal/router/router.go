// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// digimenu API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"digimenu/internal/handlers"
	"digimenu/internal/middleware"
)

// Options configures the cross-cutting parts of the router.
type Options struct {
	JWTSecret string
	JWTIssuer string

	// RequestTimeout bounds every request except the theme event stream.
	RequestTimeout time.Duration

	// PublicLimiter rate-limits the storefront routes. Nil disables it.
	PublicLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Storefront routes, addressed by tenant id.
	r.Route("/api/public/{tenantID}", func(r chi.Router) {
		if opts.PublicLimiter != nil {
			r.Use(opts.PublicLimiter.Middleware)
		}

		// Long-lived stream; must not be cut by the request timeout.
		r.Get("/theme/events", public.ThemeEvents)

		r.Group(func(r chi.Router) {
			r.Use(timeout(opts.RequestTimeout))
			r.Get("/theme", public.Theme)
			r.Get("/theme.css", public.ThemeCSS)
			r.Get("/menu", public.Menu)
			r.Get("/company", public.Company)
			r.Post("/visit", public.Visit)
			r.Get("/qr.png", public.QRCode)
		})
	})

	// Admin routes, scoped to the tenant named by the bearer token.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireBearer(opts.JWTSecret, opts.JWTIssuer))
		r.Use(middleware.NoStore)
		r.Use(timeout(opts.RequestTimeout))

		r.Route("/themes", func(r chi.Router) {
			r.Get("/", admin.ListThemes)
			r.Post("/", admin.CreateTheme)
			r.Get("/current", admin.CurrentTheme)
			r.Patch("/{id}", admin.UpdateTheme)
			r.Post("/{id}/activate", admin.ActivateTheme)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.ListCategories)
			r.Post("/", admin.CreateCategory)
			r.Post("/reorder", admin.ReorderCategories)
			r.Put("/{id}", admin.UpdateCategory)
			r.Delete("/{id}", admin.DeleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", admin.ListProducts)
			r.Post("/", admin.CreateProduct)
			r.Get("/{id}", admin.GetProduct)
			r.Put("/{id}", admin.UpdateProduct)
			r.Delete("/{id}", admin.DeleteProduct)
		})

		r.Get("/company", admin.GetCompany)
		r.Put("/company", admin.UpsertCompany)

		r.Get("/visitors", admin.VisitorStats)

		r.Post("/uploads", admin.Upload)
		r.Delete("/uploads", admin.DeleteUpload)

		r.Get("/cache-log", admin.CacheLog)
	})

	return r
}

// timeout wraps chi's Timeout middleware; a zero duration disables it.
func timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return chimw.Timeout(d)
}

// healthHandler responds with a simple JSON status for load balancer and
// container health checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
