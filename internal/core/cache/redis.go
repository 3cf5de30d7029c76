package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache 为 nil 或未配置 Redis 时直接回源，仍合并并发回源
type Cache struct {
	RDB    *redis.Client
	Prefix string
	log    *zap.Logger
	sf     singleflight.Group
}

// New addr 为空时返回只做 singleflight 的 Cache
func New(addr, pass string, db int, l *zap.Logger) *Cache {
	c := &Cache{Prefix: "kinopro:", log: l}
	if addr != "" {
		c.RDB = redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	}
	return c
}

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	// 先读缓存
	if c.Enabled() {
		b, err := c.RDB.Get(ctx, c.key(key)).Bytes()
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, redis.Nil) && c.log != nil {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if c.Enabled() {
			if e := c.RDB.Set(ctx, c.key(key), b, ttl).Err(); e != nil && c.log != nil {
				c.log.Warn("cache set failed", zap.String("key", key), zap.Error(e))
			}
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 删除缓存键，失败只记日志
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.RDB.Del(ctx, full...).Err(); err != nil && c.log != nil {
		c.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}
