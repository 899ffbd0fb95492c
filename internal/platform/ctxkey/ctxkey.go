// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the typed context keys shared by middleware, ctxutil
// and respond. Read and write the values through ctxutil.
package ctxkey

type key uint8

const (
	// KeyRequestID carries the X-Request-ID of the request.
	KeyRequestID key = iota + 1

	// KeyVisitor carries the verified [*sec.VisitorClaims].
	KeyVisitor

	// KeyLogger carries the per-request [*log/slog.Logger].
	KeyLogger
)
