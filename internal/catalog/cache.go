// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/taibuivan/anitoki/internal/schedule"
)

// ErrCacheMiss is returned by [Cache.Get] when no snapshot is stored.
var ErrCacheMiss = errors.New("catalog: cache miss")

// Snapshot is the last successful fetch of one source.
type Snapshot struct {
	Source    string           `json:"source"`
	Entries   []schedule.Entry `json:"entries"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Cache stores snapshots keyed by source name.
type Cache interface {
	Get(context context.Context, source string) (*Snapshot, error)
	Set(context context.Context, snapshot *Snapshot, ttl time.Duration) error
}

// noCache always misses. It backs services built without a cache.
type noCache struct{}

func (noCache) Get(context.Context, string) (*Snapshot, error) { return nil, ErrCacheMiss }

func (noCache) Set(context.Context, *Snapshot, time.Duration) error { return nil }
