// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package source holds the HTTP plumbing shared by the schedule upstreams
(Jikan and AniList).

A [Requester] paces calls with a token bucket, retries transient failures
with exponential backoff (honouring Retry-After) and decodes JSON bodies.
Non-transient HTTP failures are returned immediately as [*StatusError].
*/
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"github.com/taibuivan/anitoki/internal/platform/constants"
)

// Defaults applied by [NewRequester] for zero option values.
const (
	DefaultTimeout   = 15 * time.Second
	DefaultAttempts  = 4
	DefaultBaseDelay = 500 * time.Millisecond
	DefaultMaxDelay  = 8 * time.Second

	// errorBodyLimit caps how much of a failed response is kept for logs.
	errorBodyLimit = 2048
)

// # Errors

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Source     string
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Source, e.StatusCode, e.Body)
}

// Transient reports whether the request may succeed if repeated.
func (e *StatusError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// # Requester

// Options configures a [Requester].
type Options struct {
	// Name labels errors and log lines, e.g. "jikan".
	Name string

	// HTTPClient defaults to a client with [DefaultTimeout].
	HTTPClient *http.Client

	// Limiter paces outgoing requests. Nil means unlimited. It may be shared
	// between requesters that hit the same host.
	Limiter *rate.Limiter

	Attempts  uint
	BaseDelay time.Duration
	MaxDelay  time.Duration

	Logger *slog.Logger
}

// Requester performs paced, retried JSON requests against one upstream.
type Requester struct {
	name      string
	client    *http.Client
	limiter   *rate.Limiter
	attempts  uint
	baseDelay time.Duration
	maxDelay  time.Duration
	logger    *slog.Logger
}

// NewRequester applies defaults to opts and returns a Requester.
func NewRequester(opts Options) *Requester {
	requester := &Requester{
		name:      opts.Name,
		client:    opts.HTTPClient,
		limiter:   opts.Limiter,
		attempts:  opts.Attempts,
		baseDelay: opts.BaseDelay,
		maxDelay:  opts.MaxDelay,
		logger:    opts.Logger,
	}

	if requester.client == nil {
		requester.client = &http.Client{Timeout: DefaultTimeout}
	}
	if requester.attempts == 0 {
		requester.attempts = DefaultAttempts
	}
	if requester.baseDelay <= 0 {
		requester.baseDelay = DefaultBaseDelay
	}
	if requester.maxDelay <= 0 {
		requester.maxDelay = DefaultMaxDelay
	}
	if requester.logger == nil {
		requester.logger = slog.Default()
	}

	return requester
}

// Name returns the upstream label.
func (r *Requester) Name() string { return r.name }

// NewLimiter returns a token bucket allowing rps requests per second with a
// burst of one.
func NewLimiter(rps float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// DoJSON sends the request built by build and decodes a 2xx body into out.
//
// build is called once per attempt so that request bodies can be replayed.
// Transport errors, 429 and 5xx are retried; other statuses and decoding
// failures are returned at once.
func (r *Requester) DoJSON(ctx context.Context, build func(ctx context.Context) (*http.Request, error), out any) error {
	attempt := func() error {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
		}

		request, err := build(ctx)
		if err != nil {
			return retry.Unrecoverable(fmt.Errorf("%s: build request: %w", r.name, err))
		}
		request.Header.Set("Accept", "application/json")
		request.Header.Set("User-Agent", constants.UserAgent)

		response, err := r.client.Do(request)
		if err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
		defer response.Body.Close()

		if response.StatusCode < 200 || response.StatusCode > 299 {
			statusErr := r.statusError(response)
			if statusErr.Transient() {
				return statusErr
			}
			return retry.Unrecoverable(statusErr)
		}

		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return retry.Unrecoverable(fmt.Errorf("%s: decode response: %w", r.name, err))
		}
		return nil
	}

	return retry.Do(attempt,
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.baseDelay),
		retry.MaxDelay(r.maxDelay),
		retry.DelayType(r.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.logger.WarnContext(ctx, "upstream_retry",
				slog.String("source", r.name),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	)
}

// delay honours Retry-After when the upstream sent one and falls back to
// exponential backoff otherwise.
func (r *Requester) delay(n uint, err error, config *retry.Config) time.Duration {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
		return min(statusErr.RetryAfter, r.maxDelay)
	}
	return retry.BackOffDelay(n, err, config)
}

func (r *Requester) statusError(response *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(response.Body, errorBodyLimit))
	return &StatusError{
		Source:     r.name,
		StatusCode: response.StatusCode,
		Body:       strings.TrimSpace(string(body)),
		RetryAfter: parseRetryAfter(response.Header.Get("Retry-After")),
	}
}

// parseRetryAfter reads the delay-seconds form of Retry-After.
func parseRetryAfter(raw string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
