// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Visitors: cookie name and token lifetime for anonymous visitors.
  - Cache Taxonomy: Redis key and channel prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "anitoki"
	AppVersion = "0.1.0-dev"

	// UserAgent identifies outbound calls to the schedule sources.
	UserAgent = AppName + "/" + AppVersion
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of
	// the response. It must outlast [GlobalRequestTimeout]. Event streams
	// clear it per request.
	DefaultWriteTimeout = GlobalRequestTimeout + 5*time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Visitors

const (
	// VisitorIssuer is the 'iss' claim of visitor tokens.
	VisitorIssuer = "anitoki.app"

	// VisitorCookieName holds the signed visitor token.
	VisitorCookieName = "anitoki_visitor"

	// VisitorTokenTTL is how long a visitor keeps the same identity.
	VisitorTokenTTL = 365 * 24 * time.Hour

	// VisitorKeyInfo is the HKDF info string for the visitor signing key.
	VisitorKeyInfo = "anitoki visitor token v1"
)

// # Streaming

const (
	// EventHeartbeatInterval spaces keep-alive comments on event streams.
	EventHeartbeatInterval = 30 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderAcceptLanguage = "Accept-Language"
)

// # JSON Field Identifiers

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSnapshot    = "catalog:snapshot:"
	RedisPrefixThemeEvents = "theme:events:"
)
