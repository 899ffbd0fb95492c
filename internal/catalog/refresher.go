// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/anitoki/pkg/clock"
)

// Refresher states reported by [Status].
const (
	StateIdle       = "idle"
	StateRefreshing = "refreshing"
	StateStopped    = "stopped"
)

// Status is a point-in-time view of the background refresher.
type Status struct {
	Running         bool           `json:"running"`
	State           string         `json:"state"`
	LastRefreshAt   time.Time      `json:"last_refresh_at"`
	LastRefreshMs   int64          `json:"last_refresh_ms"`
	NextRefreshAt   time.Time      `json:"next_refresh_at"`
	RefreshInterval string         `json:"refresh_interval"`
	Entries         map[string]int `json:"entries"`
	LastError       string         `json:"last_error,omitempty"`
}

// refreshable is the part of [Service] the refresher drives.
type refreshable interface {
	Refresh(context context.Context) (map[string]int, error)
}

// Refresher keeps cached snapshots warm on a fixed interval.
//
// Start runs an initial population, then refreshes on every tick or manual
// trigger until Stop. Stop is idempotent and waits for the loop to exit.
type Refresher struct {
	service refreshable
	clock   clock.Clock
	logger  *slog.Logger
	timeout time.Duration

	trigger  chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
	startMu  sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// NewRefresher returns a stopped Refresher. timeout bounds each refresh
// run; zero means unbounded.
func NewRefresher(service refreshable, clk clock.Clock, timeout time.Duration, logger *slog.Logger) *Refresher {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		service: service,
		clock:   clk,
		logger:  logger,
		timeout: timeout,
		trigger: make(chan struct{}, 1),
		status:  Status{State: StateStopped, Entries: map[string]int{}},
	}
}

// Start launches the refresh loop. Calling Start on a refresher that is
// running or has been stopped is a no-op.
func (refresher *Refresher) Start(interval time.Duration) {
	refresher.startMu.Lock()
	defer refresher.startMu.Unlock()

	if refresher.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	refresher.cancel = cancel
	refresher.done = make(chan struct{})

	refresher.statusMu.Lock()
	refresher.status.Running = true
	refresher.status.State = StateIdle
	refresher.status.RefreshInterval = interval.String()
	refresher.statusMu.Unlock()

	go refresher.loop(ctx, interval)
}

func (refresher *Refresher) loop(ctx context.Context, interval time.Duration) {
	defer close(refresher.done)

	refresher.logger.Info("catalog_refresher_started", slog.Duration("interval", interval))
	refresher.run(ctx, "initial")

	ticks := refresher.clock.Tick(ctx, interval)
	for {
		refresher.statusMu.Lock()
		refresher.status.NextRefreshAt = refresher.clock.Now().Add(interval).UTC()
		refresher.statusMu.Unlock()

		select {
		case <-ctx.Done():
			refresher.statusMu.Lock()
			refresher.status.Running = false
			refresher.status.State = StateStopped
			refresher.statusMu.Unlock()
			refresher.logger.Info("catalog_refresher_stopped")
			return
		case _, ok := <-ticks:
			if !ok {
				ticks = nil
				continue
			}
			refresher.run(ctx, "periodic")
		case <-refresher.trigger:
			refresher.run(ctx, "manual")
		}
	}
}

func (refresher *Refresher) run(ctx context.Context, reason string) {
	refresher.statusMu.Lock()
	refresher.status.State = StateRefreshing
	refresher.statusMu.Unlock()

	runCtx := ctx
	if refresher.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, refresher.timeout)
		defer cancel()
	}

	started := refresher.clock.Now()
	counts, err := refresher.service.Refresh(runCtx)
	elapsed := refresher.clock.Now().Sub(started)

	refresher.statusMu.Lock()
	refresher.status.State = StateIdle
	refresher.status.LastRefreshAt = started.UTC()
	refresher.status.LastRefreshMs = elapsed.Milliseconds()
	for name, count := range counts {
		if count > 0 || err == nil {
			refresher.status.Entries[name] = count
		}
	}
	refresher.status.LastError = ""
	if err != nil {
		refresher.status.LastError = err.Error()
	}
	refresher.statusMu.Unlock()

	if err != nil {
		refresher.logger.Error("catalog_refresh_failed",
			slog.String("reason", reason),
			slog.Any("error", err),
		)
		return
	}
	refresher.logger.Info("catalog_refreshed",
		slog.String("reason", reason),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)
}

// Refresh queues an immediate refresh. It never blocks; a refresh that is
// already queued absorbs the request. It reports whether the loop is running.
func (refresher *Refresher) Refresh() bool {
	select {
	case refresher.trigger <- struct{}{}:
	default:
	}
	return refresher.Status().Running
}

// Status returns a copy of the refresher state.
func (refresher *Refresher) Status() Status {
	refresher.statusMu.RLock()
	defer refresher.statusMu.RUnlock()

	status := refresher.status
	status.Entries = make(map[string]int, len(refresher.status.Entries))
	for name, count := range refresher.status.Entries {
		status.Entries[name] = count
	}
	return status
}

// Stop ends the loop and waits for it to exit. Before Start it does
// nothing, so a later Start still runs and a later Stop still ends it.
func (refresher *Refresher) Stop() {
	refresher.startMu.Lock()
	cancel, done := refresher.cancel, refresher.done
	refresher.startMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
