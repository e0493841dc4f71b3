// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestTenantLocksSerializeSameTenant(t *testing.T) {
	var locks tenantLocks
	tenantID := uuid.New()

	var inside, maxInside, total int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(tenantID)
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			total++
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("holders at once: got %d, want 1", maxInside)
	}
	if total != 50 {
		t.Errorf("completed: got %d, want 50", total)
	}
	if n := locks.size(); n != 0 {
		t.Errorf("entries after release: got %d, want 0", n)
	}
}

func TestTenantLocksIndependentTenants(t *testing.T) {
	var locks tenantLocks
	a, b := uuid.New(), uuid.New()

	unlockA := locks.lock(a)
	done := make(chan struct{})
	go func() {
		unlockB := locks.lock(b)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()

	if n := locks.size(); n != 0 {
		t.Errorf("entries after release: got %d, want 0", n)
	}
}
