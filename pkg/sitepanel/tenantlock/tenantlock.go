// Package tenantlock serializes list writes per tenant. A debounced bulk
// autosave and an incremental mutation can race for the same website; the
// database transaction keeps each atomic, but interleaving them is still
// order-dependent. Taking the tenant's lock around every write makes the
// outcome deterministic: one writer at a time, last writer wins.
package tenantlock

import "sync"

// Registry hands out one mutex per tenant id.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the tenant's mutex and returns the unlock func.
//
//	defer locks.Lock(website.ID)()
func (r *Registry) Lock(tenantID string) func() {
	r.mu.Lock()
	m, ok := r.locks[tenantID]
	if !ok {
		m = &sync.Mutex{}
		r.locks[tenantID] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
