// Package querycache binds fetch functions to a keyed in-process cache with
// per-key staleness windows and mutation-driven invalidation.
package querycache

import (
	"sync"
	"time"
)

// Cache keys for the resources this client reads. Mutations name the keys
// they invalidate from this set.
const (
	KeyCurrentUser    = "auth/me"
	KeyVendors        = "vendors"
	KeyContracts      = "contracts"
	KeyContractTags   = "contracts/tags"
	KeyTenantUsers    = "tenantUsers"
	KeyTenantSettings = "tenant/settings"
	KeyItems          = "items"
	KeySessions       = "sessions"
)

type entry struct {
	data      any
	expiresAt time.Time
}

// Cache is the shared client-side read cache. Its lifecycle follows the
// session: populated on demand, flushed wholesale on logout or debug clear.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	nowTime func() time.Time
}

// CacheOption defines a function type to modify the Cache instance.
type CacheOption func(*Cache)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CacheOption {
	return func(c *Cache) {
		c.nowTime = nowFunc
	}
}

// NewCache creates an empty cache.
func NewCache(options ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Get returns the cached value for key if present and within its staleness
// window.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.nowTime().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores v under key with the given staleness window.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: v, expiresAt: c.nowTime().Add(ttl)}
}

// Invalidate drops the named entries so the next read refetches.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of live entries, counting stale ones that have not
// been read since expiring.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
