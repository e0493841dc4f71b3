// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// TenantKey is the context key for the authenticated tenant id.
	TenantKey contextKey = "tenant"
)

// Claims are the bearer token claims issued by the identity provider. The
// tenant is taken from tenant_id, or from sub when tenant_id is absent.
type Claims struct {
	TenantID string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// tenant returns the tenant id the token speaks for.
func (c *Claims) tenant() (uuid.UUID, error) {
	raw := strings.TrimSpace(c.TenantID)
	if raw == "" {
		raw = strings.TrimSpace(c.Subject)
	}
	if raw == "" {
		return uuid.Nil, errors.New("token names no tenant")
	}
	return uuid.Parse(raw)
}

// RequireBearer validates an HS256 bearer token and stores the tenant id in
// the request context. Requests without a valid token get 401. When issuer
// is non-empty the iss claim must match it.
func RequireBearer(secret, issuer string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" || len(key) == 0 {
				unauthorized(w, "missing bearer token")
				return
			}

			claims := &Claims{}
			tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return key, nil
			})
			if err != nil || !tok.Valid {
				unauthorized(w, "invalid token")
				return
			}
			if issuer != "" && !claims.VerifyIssuer(issuer, true) {
				unauthorized(w, "invalid token issuer")
				return
			}

			tenantID, err := claims.tenant()
			if err != nil {
				unauthorized(w, "invalid token tenant")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenantID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="digimenu"`)
	writeError(w, http.StatusUnauthorized, msg)
}

// WithTenant returns a copy of ctx carrying the tenant id.
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantKey, tenantID)
}

// TenantFromCtx extracts the authenticated tenant id from the request
// context. The bool is false when the request was not authenticated.
func TenantFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(TenantKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
