package tenantlock

import (
	"sync"
	"testing"
)

func TestLockSerializesSameTenant(t *testing.T) {
	r := NewRegistry()

	const workers = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := r.Lock("site-a")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("Expected %d increments, got %d", workers, counter)
	}
}

func TestLockDifferentTenantsIndependent(t *testing.T) {
	r := NewRegistry()

	unlockA := r.Lock("site-a")
	// Must not block: different tenant, different mutex.
	unlockB := r.Lock("site-b")

	unlockA()
	unlockB()
}

func TestLockReusableAfterUnlock(t *testing.T) {
	r := NewRegistry()

	r.Lock("site-a")()
	r.Lock("site-a")()
}
