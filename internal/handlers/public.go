// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"digimenu/internal/metrics"
	"digimenu/internal/models"
	"digimenu/internal/theme"
)

// QR code size bounds in pixels.
const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// DefaultHeartbeat is the comment-line interval on theme event streams.
const DefaultHeartbeat = 25 * time.Second

// Public groups the unauthenticated storefront handlers. Requests address
// the tenant by the {tenantID} URL parameter.
type Public struct {
	resolver   ThemeResolver
	subscriber ThemeSubscriber
	categories CategoryRepository
	products   ProductRepository
	company    CompanyRepository
	visits     VisitCounter
	publicURL  string
	heartbeat  time.Duration
}

// NewPublic creates a new Public handler group. subscriber and visits may be
// nil; their endpoints then answer 503.
func NewPublic(resolver ThemeResolver, subscriber ThemeSubscriber, categories CategoryRepository, products ProductRepository, company CompanyRepository, visits VisitCounter, publicURL string) *Public {
	return &Public{
		resolver:   resolver,
		subscriber: subscriber,
		categories: categories,
		products:   products,
		company:    company,
		visits:     visits,
		publicURL:  strings.TrimRight(publicURL, "/"),
		heartbeat:  DefaultHeartbeat,
	}
}

func publicTenant(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return uuidParam(w, r, "tenantID", "tenant_id")
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// resolvedFor resolves the tenant's theme and answers a conditional request
// with 304. The bool is false when the response was already written.
func (p *Public) resolvedFor(w http.ResponseWriter, r *http.Request, tenantID uuid.UUID) (*theme.Resolved, bool) {
	res := p.resolver.Resolved(r.Context(), tenantID)

	w.Header().Set("ETag", res.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, res.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return nil, false
	}
	return res, true
}

// Theme returns the tenant's resolved theme. A tenant without any theme
// gets the compiled-in default, never an error.
func (p *Public) Theme(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}
	res, ok := p.resolvedFor(w, r, tenantID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ThemeCSS serves the resolved tokens as CSS custom properties.
func (p *Public) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}
	res, ok := p.resolvedFor(w, r, tenantID)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, res.Tokens.CSS())
}

// ThemeEvents streams the resolved theme as Server-Sent Events: one
// "theme" event on connect and one after every change.
func (p *Public) ThemeEvents(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "streaming is not supported")
		return
	}
	if p.subscriber == nil {
		writeMessage(w, http.StatusServiceUnavailable, "live theme updates are not available")
		return
	}

	ctx := r.Context()
	events, cancel, err := p.subscriber.Subscribe(ctx, tenantID)
	if err != nil {
		slog.Error("theme subscribe failed", "tenant_id", tenantID, "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "live theme updates are not available")
		return
	}
	defer cancel()

	// The stream outlives the server's WriteTimeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	send := func() error {
		res := p.resolver.Resolved(ctx, tenantID)
		data, err := json.Marshal(res)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: theme\nid: %s\ndata: %s\n\n", strings.Trim(res.ETag, `"`), data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := send(); err != nil {
		return
	}

	ticker := time.NewTicker(p.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-events:
			if !open {
				return
			}
			if err := send(); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// menuResponse is the storefront payload: the menu plus its theme.
type menuResponse struct {
	models.Menu
	Theme *theme.Resolved `json:"theme"`
}

// Menu returns the tenant's company info, visible categories with their
// available products, uncategorized products, and the resolved theme.
func (p *Public) Menu(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	company, err := p.company.Get(ctx, tenantID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		writeError(w, r, err)
		return
	}
	categories, err := p.categories.List(ctx, tenantID, true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	products, err := p.products.ListAvailable(ctx, tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuResponse{
		Menu:  buildMenu(company, categories, products),
		Theme: p.resolver.Resolved(ctx, tenantID),
	})
}

// buildMenu groups products under their categories, keeping both lists in
// the order given. Products of hidden categories are left out.
func buildMenu(company *models.Company, categories []models.Category, products []models.Product) models.Menu {
	menu := models.Menu{
		Company:       company,
		Categories:    make([]models.MenuCategory, 0, len(categories)),
		Uncategorized: []models.Product{},
	}

	index := make(map[uuid.UUID]int, len(categories))
	for i, c := range categories {
		index[c.ID] = i
		menu.Categories = append(menu.Categories, models.MenuCategory{Category: c, Products: []models.Product{}})
	}

	for _, prod := range products {
		if prod.CategoryID == nil {
			menu.Uncategorized = append(menu.Uncategorized, prod)
			continue
		}
		if i, ok := index[*prod.CategoryID]; ok {
			menu.Categories[i].Products = append(menu.Categories[i].Products, prod)
		}
	}
	for i := range menu.Categories {
		menu.Categories[i].ProductCount = len(menu.Categories[i].Products)
	}
	return menu
}

// Company returns the tenant's public company profile.
func (p *Public) Company(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}

	c, err := p.company.Get(r.Context(), tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type visitResponse struct {
	Total int64 `json:"total"`
}

// Visit counts one storefront visit.
func (p *Public) Visit(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}
	if p.visits == nil {
		writeMessage(w, http.StatusServiceUnavailable, "visitor counter is not available")
		return
	}

	total, err := p.visits.Record(r.Context(), tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.VisitsTotal.Inc()
	writeJSON(w, http.StatusOK, visitResponse{Total: total})
}

// MenuURL is the storefront address encoded in the tenant's QR code.
func (p *Public) MenuURL(tenantID uuid.UUID) string {
	return p.publicURL + "/menu/" + tenantID.String()
}

// QRCode renders a PNG QR code pointing at the tenant's storefront.
// ?size= sets the edge length in pixels and is clamped to 128..1024.
func (p *Public) QRCode(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := publicTenant(w, r)
	if !ok {
		return
	}

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "size must be an integer", Field: "size"})
			return
		}
		size = min(max(n, minQRSize), maxQRSize)
	}

	png, err := qrcode.Encode(p.MenuURL(tenantID), qrcode.Medium, size)
	if err != nil {
		slog.Error("qr code generation failed", "tenant_id", tenantID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
