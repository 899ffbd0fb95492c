// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/anitoki/pkg/clock"
)

/*
TestManual_Advance moves time and fires registered ticks.
*/
func TestManual_Advance(t *testing.T) {
	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	manual := clock.NewManual(start)
	ticks := manual.Tick(context.Background(), time.Hour)

	manual.Advance(time.Hour)

	select {
	case at := <-ticks:
		assert.Equal(t, start.Add(time.Hour), at)
	default:
		t.Fatal("expected a tick")
	}
	assert.Equal(t, start.Add(time.Hour), manual.Now())

	// An unread tick is not queued twice.
	manual.Fire()
	manual.Fire()
	<-ticks
	select {
	case <-ticks:
		t.Fatal("unexpected second tick")
	default:
	}
}

/*
TestSystem_TickStops closes the channel and leaves no goroutine behind.
*/
func TestSystem_TickStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := clock.System{}.Tick(ctx, time.Millisecond)

	_, ok := <-ticks
	require.True(t, ok)

	cancel()
	for range ticks {
	}
}
