// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"digimenu/internal/cache"
	"digimenu/internal/middleware"
	"digimenu/internal/models"
	"digimenu/internal/slug"
	"digimenu/internal/store"
	"digimenu/internal/theme"
)

var errBackend = errors.New("connection refused")

// request builds a request carrying chi URL params and, when tenantID is
// not nil, an authenticated tenant.
func request(method, target, body string, tenantID uuid.UUID, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if tenantID != uuid.Nil {
		ctx = middleware.WithTenant(ctx, tenantID)
	}
	return req.WithContext(ctx)
}

// serve runs h and returns the recorder.
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// ---------- categories ----------

type fakeCategories struct {
	mu        sync.Mutex
	items     []models.Category
	reordered []store.ReorderItem
	err       error
}

func (f *fakeCategories) List(_ context.Context, tenantID uuid.UUID, visibleOnly bool) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Category{}
	for _, c := range f.items {
		if c.TenantID == tenantID && (c.IsVisible || !visibleOnly) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) FindByID(_ context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id && c.TenantID == tenantID {
			return &c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCategories) Create(_ context.Context, tenantID uuid.UUID, in models.CategoryInput) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c := models.Category{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        in.Name,
		Slug:        slug.Generate(in.Name),
		Description: in.Description,
		SortOrder:   len(f.items),
		IsVisible:   in.IsVisible == nil || *in.IsVisible,
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	f.items = append(f.items, c)
	return &c, nil
}

func (f *fakeCategories) Update(_ context.Context, tenantID, id uuid.UUID, in models.CategoryInput) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.items {
		if c.ID == id && c.TenantID == tenantID {
			f.items[i].Name = in.Name
			f.items[i].Slug = slug.Generate(in.Name)
			f.items[i].Description = in.Description
			out := f.items[i]
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCategories) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.items {
		if c.ID == id && c.TenantID == tenantID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeCategories) Reorder(_ context.Context, _ uuid.UUID, items []store.ReorderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reordered = items
	return nil
}

// ---------- products ----------

type fakeProducts struct {
	mu    sync.Mutex
	items []models.Product
	err   error

	lastCategory *uuid.UUID
}

func (f *fakeProducts) List(_ context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCategory = categoryID
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Product{}
	for _, p := range f.items {
		if p.TenantID != tenantID {
			continue
		}
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) ListAvailable(ctx context.Context, tenantID uuid.UUID) ([]models.Product, error) {
	all, err := f.List(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, p := range all {
		if p.IsAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) FindByID(_ context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id && p.TenantID == tenantID {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeProducts) Create(_ context.Context, tenantID uuid.UUID, in models.ProductInput) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Product{
		ID:          uuid.New(),
		TenantID:    tenantID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
		SortOrder:   in.SortOrder,
	}
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakeProducts) Update(_ context.Context, tenantID, id uuid.UUID, in models.ProductInput) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.items {
		if p.ID == id && p.TenantID == tenantID {
			f.items[i].Name = in.Name
			f.items[i].Price = in.Price
			f.items[i].CategoryID = in.CategoryID
			out := f.items[i]
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeProducts) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.items {
		if p.ID == id && p.TenantID == tenantID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// ---------- company ----------

type fakeCompany struct {
	mu        sync.Mutex
	companies map[uuid.UUID]models.Company
	lastInput models.CompanyInput
	err       error
}

func newFakeCompany() *fakeCompany {
	return &fakeCompany{companies: make(map[uuid.UUID]models.Company)}
}

func (f *fakeCompany) Get(_ context.Context, tenantID uuid.UUID) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.companies[tenantID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCompany) Upsert(_ context.Context, tenantID uuid.UUID, in models.CompanyInput) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = in
	c := models.Company{TenantID: tenantID, Name: in.Name, Email: in.Email, Currency: in.Currency}
	if c.Currency == "" {
		c.Currency = models.DefaultCurrency
	}
	f.companies[tenantID] = c
	return &c, nil
}

// ---------- visits ----------

type fakeVisits struct {
	mu       sync.Mutex
	total    int64
	lastDays int
	err      error
}

func (f *fakeVisits) Record(_ context.Context, _ uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.total++
	return f.total, nil
}

func (f *fakeVisits) Stats(_ context.Context, _ uuid.UUID, days int) (*cache.VisitorStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastDays = days
	if f.err != nil {
		return nil, f.err
	}
	return &cache.VisitorStats{Total: f.total, Daily: []cache.DailyVisits{}}, nil
}

// ---------- object storage ----------

const fakeCDN = "https://cdn.test/menu"

type fakeObjects struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	deleted  []string
	failWith error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (f *fakeObjects) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = buf.Bytes()
	f.types[key] = contentType
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjects) FileURL(key string) string { return fakeCDN + "/" + key }

func (f *fakeObjects) ExtractKey(rawURL string) (string, bool) {
	prefix := fakeCDN + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	return rawURL[len(prefix):], true
}

// ---------- cache log ----------

type fakeCacheLog struct {
	lastLimit int
	entries   []store.CacheLogEntry
}

func (f *fakeCacheLog) RecentEntries(_ context.Context, _ uuid.UUID, limit int) ([]store.CacheLogEntry, error) {
	f.lastLimit = limit
	return f.entries, nil
}

// ---------- theme subscription ----------

type fakeSubscriber struct {
	events   chan struct{}
	err      error
	released chan struct{}
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{events: make(chan struct{}), released: make(chan struct{})}
}

func (f *fakeSubscriber) Subscribe(_ context.Context, _ uuid.UUID) (<-chan struct{}, func(), error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	var once sync.Once
	return f.events, func() { once.Do(func() { close(f.released) }) }, nil
}

// errGetter is a theme.Getter whose backend is down.
type errGetter struct{}

func (errGetter) Get(context.Context, uuid.UUID) (*models.ThemeConfiguration, error) {
	return nil, errBackend
}

// fixture wires both handler groups over in-memory dependencies.
type fixture struct {
	themes     *store.MemoryThemeStore
	service    *theme.Service
	categories *fakeCategories
	products   *fakeProducts
	company    *fakeCompany
	visits     *fakeVisits
	objects    *fakeObjects
	cacheLog   *fakeCacheLog
	subscriber *fakeSubscriber

	admin  *Admin
	public *Public
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		themes:     store.NewMemoryThemeStore(),
		categories: &fakeCategories{},
		products:   &fakeProducts{},
		company:    newFakeCompany(),
		visits:     &fakeVisits{},
		objects:    newFakeObjects(),
		cacheLog:   &fakeCacheLog{},
		subscriber: newFakeSubscriber(),
	}
	f.service = theme.NewService(f.themes, nil, nil)
	f.admin = NewAdmin(f.service, f.categories, f.products, f.company, f.visits, f.objects, f.cacheLog)
	f.public = NewPublic(theme.NewResolver(f.themes, nil), f.subscriber, f.categories, f.products, f.company, f.visits, "https://menu.test/")
	f.public.heartbeat = time.Hour
	return f
}
