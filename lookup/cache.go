package lookup

import(
	"context"
	"crypto/sha1"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skypies/routedb/config"
	"github.com/skypies/routedb/logger"
)

const KeyPrefix = "routedb:lookup:"

// Cached keeps answers in redis. If redis can't be reached, lookups still go through to
// the wrapped Lookuper; cache errors are only logged.
type Cached struct {
	Lookuper Lookuper
	Redis    *redis.Client
	TTL      time.Duration
	Logger   *slog.Logger
}

// OpenRedis returns nil if no address is configured.
func OpenRedis(c *config.Config) *redis.Client {
	addr := c.Get("redis.addr")
	if addr == "" { return nil }
	logger.L().Debug("redis", "addr", addr)
	return redis.NewClient(&redis.Options{Addr:addr, Password:c.Get("redis.password")})
}

// WithCache wraps l in a cache if a redis address is configured, and returns l if not.
func WithCache(c *config.Config, l Lookuper) (Lookuper, error) {
	rc := OpenRedis(c)
	if rc == nil { return l, nil }

	ttl,err := c.Duration("redis.ttl")
	if err != nil { return nil, err }
	return &Cached{Lookuper:l, Redis:rc, TTL:ttl}, nil
}

func CacheKey(prompt string) string {
	return fmt.Sprintf("%s%x", KeyPrefix, sha1.Sum([]byte(prompt)))
}

func (c *Cached)Lookup(ctx context.Context, prompt string) (string, error) {
	l := logger.Or(c.Logger)
	key := CacheKey(prompt)

	if c.Redis != nil {
		s,err := c.Redis.Get(ctx, key).Result()
		if err == nil {
			l.Debug("lookup cache hit", "key", key)
			return s, nil
		} else if err != redis.Nil {
			l.Warn("lookup cache read failed", "err", err)
		}
	}

	s,err := c.Lookuper.Lookup(ctx, prompt)
	if err != nil { return "", err }

	if c.Redis != nil {
		if err := c.Redis.Set(ctx, key, s, c.TTL).Err(); err != nil {
			l.Warn("lookup cache write failed", "err", err)
		}
	}
	return s, nil
}
