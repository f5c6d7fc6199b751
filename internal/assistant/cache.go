package assistant

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/milo-ai/milo-backend/internal/domain"
)

const (
	// DefaultCacheTTL is the default time-to-live for cache entries.
	DefaultCacheTTL = 5 * time.Minute

	// CleanupInterval is how often the cache cleaner runs.
	CleanupInterval = 1 * time.Minute

	// Key namespaces. The same prompt digest stores both its classified
	// intent and, for questions, the generated answer.
	intentSuffix = ":intent"
	answerSuffix = ":answer"
)

// cacheEntry is a cached value with its expiry time.
type cacheEntry struct {
	value    string
	expireAt time.Time
}

func (e *cacheEntry) expired() bool {
	return time.Now().After(e.expireAt)
}

// Cache is a thread-safe in-memory TTL cache for classified intents and
// conversational answers. It is a pure performance optimization: losing
// every entry changes latency and provider cost, never correctness.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	logger  *slog.Logger

	hits   int64
	misses int64
}

// CacheOption is a functional option for configuring Cache.
type CacheOption func(*Cache)

// WithCacheTTL sets a custom TTL for cache entries.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets a custom logger.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates a Cache and starts its background cleanup goroutine.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     DefaultCacheTTL,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.startCleanup()

	return c
}

// PromptKey generates the SHA256 digest of the verbatim prompt text.
// Collisions across distinct prompts are accepted risk at this width.
func PromptKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}

// Get retrieves a value by key. Expired entries are evicted lazily.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return "", false
	}

	if entry.expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.misses++
		c.mu.Unlock()
		return "", false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()

	return entry.value, true
}

// Set stores a value with the configured TTL. Concurrent writers to the
// same key race last-write-wins, which is fine: cached values are
// idempotent recomputations of the same classification.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		value:    value,
		expireAt: time.Now().Add(c.ttl),
	}
}

// GetIntent looks up a previously classified intent for the prompt.
func (c *Cache) GetIntent(prompt string) (domain.IntentLabel, bool) {
	v, ok := c.Get(PromptKey(prompt) + intentSuffix)
	if !ok {
		return "", false
	}
	label, err := domain.ParseIntent(v)
	if err != nil {
		return "", false
	}
	return label, true
}

// SetIntent stores the classified intent for the prompt.
func (c *Cache) SetIntent(prompt string, label domain.IntentLabel) {
	c.Set(PromptKey(prompt)+intentSuffix, string(label))
}

// GetAnswer looks up a previously generated conversational answer.
func (c *Cache) GetAnswer(prompt string) (string, bool) {
	return c.Get(PromptKey(prompt) + answerSuffix)
}

// SetAnswer stores a generated conversational answer for the prompt.
func (c *Cache) SetAnswer(prompt, answer string) {
	c.Set(PromptKey(prompt)+answerSuffix, answer)
}

// startCleanup periodically removes expired entries.
func (c *Cache) startCleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes all expired entries from the cache.
func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0

	for key, entry := range c.entries {
		if now.After(entry.expireAt) {
			delete(c.entries, key)
			expired++
		}
	}

	if expired > 0 && c.logger != nil {
		c.logger.Debug("cache cleanup",
			slog.Int("expired_entries", expired),
			slog.Int("remaining_entries", len(c.entries)),
		)
	}
}

// Stats returns cache hit/miss statistics.
func (c *Cache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}
