package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const assignmentCountKey = "assignment:count:total"

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache miss")

// CountCache 缓存作业总数，供完成率计算使用
type CountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCountCache(rdb *redis.Client, ttl time.Duration) *CountCache {
	return &CountCache{rdb: rdb, ttl: ttl}
}

func (c *CountCache) Get(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, assignmentCountKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func (c *CountCache) Set(ctx context.Context, n int64) error {
	return c.rdb.Set(ctx, assignmentCountKey, n, c.ttl).Err()
}

// SetIfAbsent 只在键不存在时写入，读路径回填用，避免覆盖写路径刚刷新的值
func (c *CountCache) SetIfAbsent(ctx context.Context, n int64) error {
	return c.rdb.SetNX(ctx, assignmentCountKey, n, c.ttl).Err()
}

func (c *CountCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, assignmentCountKey).Err()
}
