// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package theme

import "context"

// Store persists preference records by visitor.
type Store interface {
	// Read returns the zero Record for an unknown visitor.
	Read(context context.Context, visitorID string) (Record, error)
	Write(context context.Context, visitorID string, record Record) error
}

// Notifier fans resolved-state changes out to subscribers.
type Notifier interface {
	Publish(context context.Context, visitorID string, state State) error

	// Subscribe delivers states published for visitorID until ctx is done or
	// the returned cancel func is called.
	Subscribe(context context.Context, visitorID string) (<-chan State, func(), error)
}
