package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sanmit243/KodJobs/internal/model"
)

// CachedCatalog is a read-through Redis decorator over another Catalog.
// Cache failures are never fatal: a miss or a Redis error falls through to
// the upstream, and a failed Set only logs a warning.
type CachedCatalog struct {
	next Catalog
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedCatalog wraps next with a Redis cache using the given TTL.
func NewCachedCatalog(next Catalog, rdb *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{next: next, rdb: rdb, ttl: ttl}
}

// FetchPage serves a page from Redis when present, otherwise fetches
// upstream and stores the result.
func (c *CachedCatalog) FetchPage(ctx context.Context, page int) ([]model.Job, error) {
	key := fmt.Sprintf("jobs:page:%d", page)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var jobs []model.Job
		if err := json.Unmarshal(data, &jobs); err == nil {
			return jobs, nil
		}
		slog.Warn("cache entry corrupt, refetching", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("cache read failed", "key", key, "err", err)
	}

	jobs, err := c.next.FetchPage(ctx, page)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, jobs)
	return jobs, nil
}

// FetchByID serves a single posting from Redis when present.
func (c *CachedCatalog) FetchByID(ctx context.Context, id int) (*model.Job, error) {
	key := fmt.Sprintf("jobs:id:%d", id)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var job model.Job
		if err := json.Unmarshal(data, &job); err == nil {
			return &job, nil
		}
		slog.Warn("cache entry corrupt, refetching", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("cache read failed", "key", key, "err", err)
	}

	job, err := c.next.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, job)
	return job, nil
}

func (c *CachedCatalog) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "err", err)
	}
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
