// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package theme

import (
	"context"
	"log/slog"

	"github.com/taibuivan/anitoki/pkg/clock"
)

// Service applies preference changes and announces resolved-state changes.
type Service struct {
	store    Store
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new theme service.
func NewService(store Store, notifier Notifier, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, notifier: notifier, clock: clk, logger: logger}
}

// Get returns the resolved theme of a visitor.
func (service *Service) Get(context context.Context, visitorID string) (State, error) {
	record, err := service.store.Read(context, visitorID)
	if err != nil {
		return State{}, err
	}
	return record.Resolve(), nil
}

// Set records an explicit theme.
func (service *Service) Set(context context.Context, visitorID string, theme Theme) (State, error) {
	return service.update(context, visitorID, func(record *Record) {
		record.Explicit = &theme
	})
}

// Toggle makes the opposite of the currently displayed theme explicit.
func (service *Service) Toggle(context context.Context, visitorID string) (State, error) {
	return service.update(context, visitorID, func(record *Record) {
		next := record.Resolve().Theme.Opposite()
		record.Explicit = &next
	})
}

// Clear forgets the explicit theme so the system preference applies again.
func (service *Service) Clear(context context.Context, visitorID string) (State, error) {
	return service.update(context, visitorID, func(record *Record) {
		record.Explicit = nil
	})
}

// ReportSystem records the visitor's system preference. It changes the
// displayed theme only when no explicit theme is set.
func (service *Service) ReportSystem(context context.Context, visitorID string, dark bool) (State, error) {
	return service.update(context, visitorID, func(record *Record) {
		record.SystemDark = dark
	})
}

// Subscribe streams resolved-state changes of a visitor.
func (service *Service) Subscribe(context context.Context, visitorID string) (<-chan State, func(), error) {
	return service.notifier.Subscribe(context, visitorID)
}

// update runs a read-modify-write of the visitor's record and publishes the
// new state when the resolved theme or its source changed. A failed publish
// is logged; the write stands.
func (service *Service) update(context context.Context, visitorID string, mutate func(*Record)) (State, error) {
	record, err := service.store.Read(context, visitorID)
	if err != nil {
		return State{}, err
	}

	before := record.Resolve()
	mutate(&record)
	record.UpdatedAt = service.clock.Now().UTC()

	if err := service.store.Write(context, visitorID, record); err != nil {
		return State{}, err
	}

	after := record.Resolve()
	if after != before {
		if err := service.notifier.Publish(context, visitorID, after); err != nil {
			service.logger.WarnContext(context, "theme_publish_failed",
				slog.String("visitor_id", visitorID),
				slog.Any("error", err),
			)
		}
	}
	return after, nil
}
