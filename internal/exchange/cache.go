package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCacheTTL - время жизни закешированного курса
const DefaultCacheTTL = 5 * time.Minute

// Cache определяет кеш разрешенных курсов по паре (base, target).
// Invalidate вызывается синхронно из Store.Update.
type Cache interface {
	Get(ctx context.Context, base, target string) (decimal.Decimal, bool)
	Set(ctx context.Context, base, target string, rate decimal.Decimal)
	Invalidate(ctx context.Context, base, target string) error
	Reset(ctx context.Context) error
}

// MemoryCache - кеш курсов в памяти процесса с фиксированным TTL
type MemoryCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rate    decimal.Decimal
	expires time.Time
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache создает кеш. ttl <= 0 заменяется на DefaultCacheTTL, now == nil на time.Now.
func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get возвращает курс, если он есть и не устарел
func (c *MemoryCache) Get(_ context.Context, base, target string) (decimal.Decimal, bool) {
	key := domain.PairKey(base, target)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return decimal.Decimal{}, false
	}

	if !c.now().Before(entry.expires) {
		c.mu.Lock()
		// Запись могла быть обновлена между RUnlock и Lock
		if current, still := c.entries[key]; still && current.expires.Equal(entry.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return decimal.Decimal{}, false
	}

	return entry.rate, true
}

// Set сохраняет курс на время TTL
func (c *MemoryCache) Set(_ context.Context, base, target string, rate decimal.Decimal) {
	c.mu.Lock()
	c.entries[domain.PairKey(base, target)] = cacheEntry{rate: rate, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate удаляет курс пары из кеша
func (c *MemoryCache) Invalidate(_ context.Context, base, target string) error {
	c.mu.Lock()
	delete(c.entries, domain.PairKey(base, target))
	c.mu.Unlock()
	return nil
}

// Reset очищает кеш целиком
func (c *MemoryCache) Reset(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	return nil
}

// Len возвращает количество записей, включая устаревшие
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
