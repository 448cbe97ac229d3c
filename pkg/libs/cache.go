package libs

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// cacheEntry is owned exclusively by the cache. lastAccess drives eviction,
// expiresAt drives expiry.
type cacheEntry struct {
	value      []byte
	expiresAt  time.Time
	lastAccess time.Time
}

// CacheStats reports cache occupancy for observability.
type CacheStats struct {
	Size     int           `json:"size"     yaml:"size"`
	Capacity int           `json:"capacity" yaml:"capacity"`
	TTL      time.Duration `json:"ttl"      yaml:"ttl"`
}

// MemoryCache is a bounded in-memory TTL cache. Capacity is a safety valve:
// when full, the entry with the oldest last access is evicted before insert.
// TTL is the primary expiry mechanism. No operation returns an error; a miss
// or an eviction is a normal, silent event.
//
// All methods are safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
}

// NewMemoryCache creates a cache bounded to maxSize entries with the given
// default TTL.
func NewMemoryCache(maxSize int, defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     defaultTTL,
	}
}

// Get returns the stored value if present and unexpired. Expired entries are
// removed on access. A hit touches the entry's last-access time.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)

		return nil, false
	}

	entry.lastAccess = time.Now()

	return entry.value, true
}

// Set stores value under key with the given TTL, or the configured default
// when ttl is zero. Overwrites any existing entry for the same key. At
// capacity, the entry with the oldest last access is evicted first.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	now := time.Now()
	c.entries[key] = &cacheEntry{
		value:      value,
		expiresAt:  now.Add(ttl),
		lastAccess: now,
	}
}

// InvalidatePrefix removes every entry whose key starts with prefix. Used
// after a successful mutation to drop the affected resource family's stale
// list and detail caches.
func (c *MemoryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// InvalidateExact removes a single entry.
func (c *MemoryCache) InvalidateExact(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
}

// Stats returns current occupancy and configuration.
func (c *MemoryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Size:     len(c.entries),
		Capacity: c.maxSize,
		TTL:      c.ttl,
	}
}

// evictOldestLocked removes the entry with the oldest last access. Caller
// must hold c.mu.
func (c *MemoryCache) evictOldestLocked() {
	var oldestKey string

	oldestAccess := time.Now().Add(time.Hour)

	for key, entry := range c.entries {
		if entry.lastAccess.Before(oldestAccess) {
			oldestAccess = entry.lastAccess
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// maskedHeaders lists header names whose values are credentials and must
// never appear in a cache key.
var maskedHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
}

// BuildCacheKey composes a deterministic key from the effective request:
// method and path, sorted query parameters, headers (credential values
// masked, names lowercased so ordering and casing cannot change the key),
// and caller-supplied extras. Logically identical requests always produce
// the same key; requests differing in any parameter never collide.
func BuildCacheKey(method, path string, query url.Values, headers map[string]string, extras map[string]string) string {
	var builder strings.Builder

	builder.WriteString(method)
	builder.WriteString(":")
	builder.WriteString(path)

	if len(query) > 0 {
		builder.WriteString("?")
		builder.WriteString(query.Encode())
	}

	if len(headers) > 0 {
		builder.WriteString("|h=")
		writeSortedPairs(&builder, normalizeHeaders(headers))
	}

	if len(extras) > 0 {
		builder.WriteString("|x=")
		writeSortedPairs(&builder, extras)
	}

	return builder.String()
}

func normalizeHeaders(headers map[string]string) map[string]string {
	normalized := make(map[string]string, len(headers))

	for name, value := range headers {
		lower := strings.ToLower(name)
		if maskedHeaders[lower] {
			value = "***"
		}

		normalized[lower] = value
	}

	return normalized
}

func writeSortedPairs(builder *strings.Builder, pairs map[string]string) {
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for i, key := range keys {
		if i > 0 {
			builder.WriteString("&")
		}

		fmt.Fprintf(builder, "%s=%s", url.QueryEscape(key), url.QueryEscape(pairs[key]))
	}
}
