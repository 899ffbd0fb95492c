// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package clock abstracts "now" and periodic ticks so that time-driven
components (background refresh, stream heartbeats, request reference
instants) can be driven deterministically in tests.

Key Types:
  - System: the runtime wall clock.
  - Manual: a hand-advanced clock whose ticks fire on demand.
*/
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock yields the current instant and periodic ticks.
type Clock interface {
	Now() time.Time

	// Tick delivers ticks every interval until ctx is done. Slow receivers
	// miss ticks rather than queue them.
	Tick(ctx context.Context, interval time.Duration) <-chan time.Time
}

// # System Clock

// System is the runtime wall clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time { return time.Now() }

// Tick wraps a [time.Ticker]; the channel is closed once ctx is done.
func (System) Tick(ctx context.Context, interval time.Duration) <-chan time.Time {
	ticks := make(chan time.Time, 1)

	go func() {
		defer close(ticks)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case at := <-ticker.C:
				select {
				case ticks <- at:
				default:
				}
			}
		}
	}()

	return ticks
}

// # Manual Clock

// Manual is a clock that only moves when told to. It is safe for
// concurrent use.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	ticks []chan time.Time
}

// NewManual returns a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to at.
func (m *Manual) Set(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = at
}

// Advance moves the clock forward by d and fires every tick channel.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
	m.Fire()
}

// Tick registers a channel that receives on [Manual.Fire]. The interval is
// ignored.
func (m *Manual) Tick(_ context.Context, _ time.Duration) <-chan time.Time {
	ticks := make(chan time.Time, 1)

	m.mu.Lock()
	m.ticks = append(m.ticks, ticks)
	m.mu.Unlock()

	return ticks
}

// Fire delivers the current instant to every registered tick channel.
// A channel whose previous tick is still unread is skipped.
func (m *Manual) Fire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ticks := range m.ticks {
		select {
		case ticks <- m.now:
		default:
		}
	}
}
