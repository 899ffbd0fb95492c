// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/anitoki/internal/platform/constants"
)

// RedisCache implements [Cache] with one JSON value per source.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed snapshot cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get loads the snapshot stored for source.

Returns:
  - *Snapshot: The decoded snapshot
  - error: ErrCacheMiss when absent or expired, otherwise connectivity or decode errors
*/
func (cache *RedisCache) Get(context context.Context, source string) (*Snapshot, error) {
	raw, err := cache.client.Get(context, snapshotKey(source)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis_snapshot_get_failed: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("redis_snapshot_decode_failed: %w", err)
	}
	return &snapshot, nil
}

// Set stores snapshot under its source key for ttl.
func (cache *RedisCache) Set(context context.Context, snapshot *Snapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("redis_snapshot_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, snapshotKey(snapshot.Source), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_snapshot_set_failed: %w", err)
	}
	return nil
}

func snapshotKey(source string) string {
	return constants.RedisPrefixSnapshot + source
}
