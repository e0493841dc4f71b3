// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"sync"

	"github.com/google/uuid"
)

// tenantLocks hands out one mutex per tenant. Entries are dropped once no
// goroutine holds or waits on them, so the map only grows with concurrency.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*tenantLock
}

type tenantLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the tenant's mutex is held and returns its release func.
func (l *tenantLocks) lock(tenantID uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*tenantLock)
	}
	entry, ok := l.locks[tenantID]
	if !ok {
		entry = &tenantLock{}
		l.locks[tenantID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, tenantID)
		}
		l.mu.Unlock()
	}
}

// size reports how many tenants currently have a lock entry.
func (l *tenantLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
