// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"digimenu/internal/handlers"
	"digimenu/internal/middleware"
	"digimenu/internal/store"
	"digimenu/internal/theme"
)

const testSecret = "router-test-secret"

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// newTestRouter wires the router over the in-memory theme store. Menu
// repositories are left nil; those routes are covered by handler tests.
func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) chi.Router {
	t.Helper()
	themes := store.NewMemoryThemeStore()
	service := theme.NewService(themes, nil, nil)
	admin := handlers.NewAdmin(service, nil, nil, nil, nil, nil, nil)
	public := handlers.NewPublic(theme.NewResolver(themes, nil), nil, nil, nil, nil, nil, "https://menu.test")
	return New(admin, public, Options{
		JWTSecret:      testSecret,
		RequestTimeout: 5 * time.Second,
		PublicLimiter:  limiter,
	})
}

func bearer(t *testing.T, tenantID uuid.UUID) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &middleware.Claims{
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + tok
}

func do(t *testing.T, h http.Handler, method, path, authz, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAdminRoutesRequireBearer(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/themes"},
		{http.MethodPost, "/api/admin/themes"},
		{http.MethodGet, "/api/admin/themes/current"},
		{http.MethodPost, "/api/admin/themes/" + uuid.NewString() + "/activate"},
		{http.MethodGet, "/api/admin/categories"},
		{http.MethodPut, "/api/admin/company"},
	} {
		rr := do(t, r, route.method, route.path, "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", route.method, route.path, rr.Code)
		}
	}
}

func TestThemeLifecycleThroughRouter(t *testing.T) {
	r := newTestRouter(t, nil)
	tenant := uuid.New()
	auth := bearer(t, tenant)
	publicTheme := "/api/public/" + tenant.String() + "/theme"

	rr := do(t, r, http.MethodGet, publicTheme, "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("default theme: got %d, want 200", rr.Code)
	}
	defaultETag := rr.Header().Get("ETag")

	rr = do(t, r, http.MethodPost, "/api/admin/themes", auth, `{"name":"Light"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create A: got %d (%s)", rr.Code, rr.Body)
	}
	rr = do(t, r, http.MethodPost, "/api/admin/themes", auth, `{"name":"Dark","colors":{"background":"#000"}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create B: got %d (%s)", rr.Code, rr.Body)
	}
	var b struct {
		ID       uuid.UUID `json:"id"`
		IsActive bool      `json:"is_active"`
	}
	json.Unmarshal(rr.Body.Bytes(), &b)
	if b.IsActive {
		t.Fatal("second theme should start inactive")
	}

	rr = do(t, r, http.MethodPost, "/api/admin/themes/"+b.ID.String()+"/activate", auth, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("activate: got %d (%s)", rr.Code, rr.Body)
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Error("admin responses should be no-store")
	}

	rr = do(t, r, http.MethodGet, publicTheme, "", "")
	var res theme.Resolved
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Theme.ID != b.ID || res.IsDefault {
		t.Errorf("public theme: got %s (default=%v), want %s", res.Theme.ID, res.IsDefault, b.ID)
	}
	if res.Tokens["color.background"] != "#000" {
		t.Errorf("color.background: got %q", res.Tokens["color.background"])
	}
	etag := rr.Header().Get("ETag")
	if etag == defaultETag {
		t.Error("ETag should change after activation")
	}

	req := httptest.NewRequest(http.MethodGet, publicTheme, nil)
	req.Header.Set("If-None-Match", etag)
	cond := httptest.NewRecorder()
	r.ServeHTTP(cond, req)
	if cond.Code != http.StatusNotModified {
		t.Errorf("conditional get: got %d, want 304", cond.Code)
	}

	// Another tenant cannot see or touch it.
	other := bearer(t, uuid.New())
	rr = do(t, r, http.MethodPost, "/api/admin/themes/"+b.ID.String()+"/activate", other, "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("cross-tenant activate: got %d, want 404", rr.Code)
	}
}

func TestSecurityHeadersAndMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := do(t, r, http.MethodGet, "/health", "", "")
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("secure headers should be applied globally")
	}

	rr = do(t, r, http.MethodGet, "/metrics", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "digimenu_theme_activations_total") {
		t.Error("metrics output should include digimenu collectors")
	}

	rr = do(t, r, http.MethodGet, "/nope", "", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown route: got %d, want 404", rr.Code)
	}
}

func TestPublicRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	r := newTestRouter(t, limiter)
	path := "/api/public/" + uuid.NewString() + "/theme"

	for i := 0; i < 2; i++ {
		if rr := do(t, r, http.MethodGet, path, "", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rr.Code)
		}
	}
	rr := do(t, r, http.MethodGet, path, "", "")
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("third request: got %d, want 429", rr.Code)
	}

	// Admin routes are not behind the storefront limiter.
	if rr := do(t, r, http.MethodGet, "/api/admin/themes", bearer(t, uuid.New()), ""); rr.Code != http.StatusOK {
		t.Errorf("admin list: got %d, want 200", rr.Code)
	}
}

func TestEventStreamUnavailableWithoutSubscriber(t *testing.T) {
	r := newTestRouter(t, nil)
	rr := do(t, r, http.MethodGet, "/api/public/"+uuid.NewString()+"/theme/events", "", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("got %d, want 503", rr.Code)
	}
}
