// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

// Admin groups the tenant-scoped admin API handlers and their dependencies.
// Every route behind it requires a bearer token naming the tenant.
type Admin struct {
	themes     ThemeService
	categories CategoryRepository
	products   ProductRepository
	company    CompanyRepository
	visits     VisitCounter
	objects    ObjectStorage
	cacheLog   CacheLogReader
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// objects, visits and cacheLog may be nil; their endpoints then answer 503.
func NewAdmin(themes ThemeService, categories CategoryRepository, products ProductRepository, company CompanyRepository, visits VisitCounter, objects ObjectStorage, cacheLog CacheLogReader) *Admin {
	return &Admin{
		themes:     themes,
		categories: categories,
		products:   products,
		company:    company,
		visits:     visits,
		objects:    objects,
		cacheLog:   cacheLog,
	}
}
