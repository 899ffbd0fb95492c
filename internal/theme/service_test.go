// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package theme_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/theme"
	"github.com/taibuivan/anitoki/pkg/clock"
	"github.com/taibuivan/anitoki/pkg/pointer"
)

const visitor = "0192d3c4-5e6f-7a8b-9c0d-1e2f3a4b5c6d"

// # Fakes

type memoryStore struct {
	mu       sync.Mutex
	records  map[string]theme.Record
	writeErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]theme.Record)}
}

func (s *memoryStore) Read(_ context.Context, visitorID string) (theme.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[visitorID], nil
}

func (s *memoryStore) Write(_ context.Context, visitorID string, record theme.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.records[visitorID] = record
	return nil
}

type memoryNotifier struct {
	mu          sync.Mutex
	published   []theme.State
	subscribers map[string][]chan theme.State
	publishErr  error
}

func newMemoryNotifier() *memoryNotifier {
	return &memoryNotifier{subscribers: make(map[string][]chan theme.State)}
}

func (n *memoryNotifier) Publish(_ context.Context, visitorID string, state theme.State) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.publishErr != nil {
		return n.publishErr
	}
	n.published = append(n.published, state)
	for _, subscriber := range n.subscribers[visitorID] {
		subscriber <- state
	}
	return nil
}

func (n *memoryNotifier) Subscribe(_ context.Context, visitorID string) (<-chan theme.State, func(), error) {
	states := make(chan theme.State, 8)
	n.mu.Lock()
	n.subscribers[visitorID] = append(n.subscribers[visitorID], states)
	n.mu.Unlock()
	return states, func() {}, nil
}

func (n *memoryNotifier) events() []theme.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]theme.State(nil), n.published...)
}

type fixture struct {
	store    *memoryStore
	notifier *memoryNotifier
	clock    *clock.Manual
	service  *theme.Service
}

func newFixture() *fixture {
	f := &fixture{
		store:    newMemoryStore(),
		notifier: newMemoryNotifier(),
		clock:    clock.NewManual(time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)),
	}
	f.service = theme.NewService(f.store, f.notifier, f.clock, nil)
	return f
}

func explicit(t theme.Theme) theme.State {
	return theme.State{Theme: t, Source: theme.SourceExplicit}
}

func system(t theme.Theme) theme.State {
	return theme.State{Theme: t, Source: theme.SourceSystem}
}

// # Resolution

/*
TestRecord_Resolve gives an explicit theme precedence over the system.
*/
func TestRecord_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		record theme.Record
		want   theme.State
	}{
		{"nothing known", theme.Record{}, system(theme.Light)},
		{"system dark", theme.Record{SystemDark: true}, system(theme.Dark)},
		{"explicit light beats system dark", theme.Record{Explicit: pointer.To(theme.Light), SystemDark: true}, explicit(theme.Light)},
		{"explicit dark", theme.Record{Explicit: pointer.To(theme.Dark)}, explicit(theme.Dark)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Resolve())
		})
	}
}

/*
TestParseTheme accepts the two themes in any case.
*/
func TestParseTheme(t *testing.T) {
	got, err := theme.ParseTheme(" DARK ")
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, got)

	_, err = theme.ParseTheme("sepia")
	assert.Error(t, err)
}

// # Service

/*
TestService_SystemNeverOverridesExplicit keeps an explicit choice across
system preference changes and publishes only real changes.
*/
func TestService_SystemNeverOverridesExplicit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	state, err := f.service.ReportSystem(ctx, visitor, true)
	require.NoError(t, err)
	assert.Equal(t, system(theme.Dark), state)

	state, err = f.service.Set(ctx, visitor, theme.Light)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Light), state)

	state, err = f.service.ReportSystem(ctx, visitor, false)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Light), state)

	state, err = f.service.ReportSystem(ctx, visitor, true)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Light), state)

	state, err = f.service.Clear(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, system(theme.Dark), state)

	assert.Equal(t, []theme.State{
		system(theme.Dark),
		explicit(theme.Light),
		system(theme.Dark),
	}, f.notifier.events())
}

/*
TestService_Toggle flips the displayed theme and makes it explicit.
*/
func TestService_Toggle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.ReportSystem(ctx, visitor, true)
	require.NoError(t, err)

	state, err := f.service.Toggle(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Light), state)

	state, err = f.service.Toggle(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Dark), state)

	record := f.store.records[visitor]
	assert.Equal(t, f.clock.Now(), record.UpdatedAt)
	assert.True(t, record.SystemDark)
}

/*
TestService_WriteFailure returns the store error and publishes nothing.
*/
func TestService_WriteFailure(t *testing.T) {
	f := newFixture()
	f.store.writeErr = errors.New("disk full")

	_, err := f.service.Set(context.Background(), visitor, theme.Dark)

	assert.EqualError(t, err, "disk full")
	assert.Empty(t, f.notifier.events())
}

/*
TestService_PublishFailure keeps the write.
*/
func TestService_PublishFailure(t *testing.T) {
	f := newFixture()
	f.notifier.publishErr = errors.New("redis down")

	state, err := f.service.Set(context.Background(), visitor, theme.Dark)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Dark), state)

	got, err := f.service.Get(context.Background(), visitor)
	require.NoError(t, err)
	assert.Equal(t, explicit(theme.Dark), got)
}
