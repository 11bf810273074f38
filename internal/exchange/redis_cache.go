package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultRedisPrefix = "pos:rates"
	redisScanCount     = 100
	// Время, в течение которого после сброса пары запись в кеш отклоняется
	defaultTombstoneTTL = 10 * time.Second
)

// setUnlessInvalidated записывает курс, только если пара недавно не сбрасывалась.
// KEYS[1] - ключ курса, KEYS[2] - отметка сброса, ARGV[1] - курс, ARGV[2] - TTL в мс.
var setUnlessInvalidated = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// RedisCache - кеш курсов в Redis, общий для нескольких экземпляров сервиса.
// Ошибки чтения и записи не прерывают расчет: они логируются и считаются промахом.
// Invalidate оставляет короткую отметку сброса, и запись курса, прочитанного
// другим экземпляром до обновления, отклоняется.
type RedisCache struct {
	client       redis.Cmdable
	prefix       string
	ttl          time.Duration
	tombstoneTTL time.Duration
	logger       *zap.Logger
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache создает кеш поверх клиента Redis
func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{
		client:       client,
		prefix:       prefix,
		ttl:          ttl,
		tombstoneTTL: defaultTombstoneTTL,
		logger:       logger,
	}
}

func (c *RedisCache) key(base, target string) string {
	return c.buildKey("", base, target)
}

func (c *RedisCache) tombstoneKey(base, target string) string {
	return c.buildKey("invalidated:", base, target)
}

func (c *RedisCache) buildKey(kind, base, target string) string {
	var b strings.Builder
	b.Grow(len(c.prefix) + len(kind) + len(base) + len(target) + 2)
	b.WriteString(c.prefix)
	b.WriteString(":")
	b.WriteString(kind)
	b.WriteString(base)
	b.WriteString(":")
	b.WriteString(target)
	return b.String()
}

// Get читает курс из Redis
func (c *RedisCache) Get(ctx context.Context, base, target string) (decimal.Decimal, bool) {
	raw, err := c.client.Get(ctx, c.key(base, target)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("rate cache read failed",
				zap.String("pair", domain.PairKey(base, target)),
				zap.Error(err),
			)
		}
		return decimal.Decimal{}, false
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		c.logger.Warn("rate cache holds malformed value",
			zap.String("pair", domain.PairKey(base, target)),
			zap.String("value", raw),
		)
		return decimal.Decimal{}, false
	}

	return rate, true
}

// Set записывает курс с TTL. Пока действует отметка сброса пары, запись пропускается.
func (c *RedisCache) Set(ctx context.Context, base, target string, rate decimal.Decimal) {
	keys := []string{c.key(base, target), c.tombstoneKey(base, target)}
	err := setUnlessInvalidated.Run(ctx, c.client, keys, rate.String(), c.ttl.Milliseconds()).Err()
	if err != nil {
		c.logger.Warn("rate cache write failed",
			zap.String("pair", domain.PairKey(base, target)),
			zap.Error(err),
		)
	}
}

// Invalidate удаляет курс пары и ставит отметку сброса
func (c *RedisCache) Invalidate(ctx context.Context, base, target string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.tombstoneKey(base, target), "1", c.tombstoneTTL)
		pipe.Del(ctx, c.key(base, target))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis cache: failed to invalidate %s: %w", domain.PairKey(base, target), err)
	}
	return nil
}

// Reset удаляет все ключи с префиксом кеша
func (c *RedisCache) Reset(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+":*", redisScanCount).Result()
		if err != nil {
			return fmt.Errorf("redis cache: failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis cache: failed to delete keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
