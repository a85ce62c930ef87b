package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// entry stores a cached value with the moment it was written and its TTL.
type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration // <= 0 means no expiration
}

func (e entry) expired(at time.Time) bool {
	return e.ttl > 0 && at.Sub(e.storedAt) > e.ttl
}

// SimpleCache is a lightweight map-backed cache with optional concurrency safety.
// Expiry is lazy: an expired entry stops being a fresh hit but stays readable
// through GetStale until it is overwritten, deleted, or purged.
type SimpleCache struct {
	// If muPtr is nil, the cache is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex

	now   func() time.Time
	items map[string]entry
}

// Options controls construction of a SimpleCache.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	// If false, the cache is not safe for concurrent use and may be faster in single-threaded contexts.
	ConcurrencySafe bool

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// NewSimpleCache constructs a new SimpleCache with the given options.
func NewSimpleCache(opts Options) *SimpleCache {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SimpleCache{
		muPtr: mu,
		now:   now,
		items: make(map[string]entry),
	}
}

func (c *SimpleCache) lockR() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.RLock()
	return c.muPtr.RUnlock
}

func (c *SimpleCache) lockW() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.Lock()
	return c.muPtr.Unlock
}

// Get implements Cache.Get.
func (c *SimpleCache) Get(key string) (any, bool) {
	unlock := c.lockR()
	defer unlock()

	e, ok := c.items[key]
	if !ok || e.expired(c.now()) {
		return nil, false
	}
	return e.value, true
}

// GetStale implements Cache.GetStale.
func (c *SimpleCache) GetStale(key string) (any, bool) {
	unlock := c.lockR()
	defer unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set implements Cache.Set.
func (c *SimpleCache) Set(key string, value any, ttl time.Duration) {
	unlock := c.lockW()
	defer unlock()

	c.items[key] = entry{
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Delete implements Cache.Delete.
func (c *SimpleCache) Delete(key string) {
	unlock := c.lockW()
	defer unlock()
	delete(c.items, key)
}

// InvalidatePrefix implements Cache.InvalidatePrefix.
func (c *SimpleCache) InvalidatePrefix(prefix string) int {
	unlock := c.lockW()
	defer unlock()

	removed := 0
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Has implements Cache.Has.
func (c *SimpleCache) Has(key string) bool {
	unlock := c.lockR()
	defer unlock()
	e, ok := c.items[key]
	return ok && !e.expired(c.now())
}

// Len implements Cache.Len. It counts only non-expired entries.
func (c *SimpleCache) Len() int {
	unlock := c.lockR()
	defer unlock()
	nowTs := c.now()
	count := 0
	for _, e := range c.items {
		if !e.expired(nowTs) {
			count++
		}
	}
	return count
}

// Keys implements Cache.Keys.
func (c *SimpleCache) Keys() []string {
	unlock := c.lockR()
	defer unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear implements Cache.Clear.
func (c *SimpleCache) Clear() {
	unlock := c.lockW()
	defer unlock()
	c.items = make(map[string]entry)
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *SimpleCache) PurgeExpired() {
	unlock := c.lockW()
	defer unlock()
	if len(c.items) == 0 {
		return
	}
	nowTs := c.now()
	for k, e := range c.items {
		if e.expired(nowTs) {
			delete(c.items, k)
		}
	}
}

// Ensure SimpleCache implements Cache at compile time.
var _ Cache = (*SimpleCache)(nil)
