package proxy

import (
	"runtime"
	"sync"
	"weak"

	"github.com/ayalpani/remotekit/remote"
)

// wrapperCache is the process-wide registry of live async wrappers, keyed by
// the identity pack of the underlying target. Entries hold weak pointers
// only: the cache never keeps a wrapper (or, through it, the target) alive.
// A cleanup registered on each wrapper removes its entry once the wrapper is
// reclaimed, so a later target reusing the identity slot can never produce a
// stale match.
type wrapperCache struct {
	mu      sync.Mutex
	entries map[remote.IDPack]weak.Pointer[Async]
}

var cache = &wrapperCache{entries: make(map[remote.IDPack]weak.Pointer[Async])}

// getOrCreate returns the live wrapper for id, constructing and registering
// one via mk when none survives. At most one live wrapper exists per
// identity.
func (c *wrapperCache) getOrCreate(id remote.IDPack, mk func() *Async) *Async {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wp, ok := c.entries[id]; ok {
		if a := wp.Value(); a != nil {
			return a
		}
		delete(c.entries, id)
	}

	a := mk()
	wp := weak.Make(a)
	c.entries[id] = wp
	runtime.AddCleanup(a, func(key remote.IDPack) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur == wp {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	}, id)
	return a
}

// len reports the number of registered entries, live or pending cleanup.
func (c *wrapperCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
