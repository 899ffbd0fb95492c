// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/source"
)

func newRequester(name string) *source.Requester {
	return source.NewRequester(source.Options{
		Name:      name,
		Attempts:  3,
		BaseDelay: time.Millisecond,
		MaxDelay:  5 * time.Millisecond,
	})
}

func getter(url string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

/*
TestRequester_RetriesTransient recovers from 503 and 429 responses.
*/
func TestRequester_RetriesTransient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch calls.Add(1) {
		case 1:
			writer.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			writer.Header().Set("Retry-After", "1")
			writer.WriteHeader(http.StatusTooManyRequests)
		default:
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			_, _ = writer.Write([]byte(`{"ok":true}`))
		}
	}))
	defer server.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := newRequester("test").DoJSON(context.Background(), getter(server.URL), &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(3), calls.Load())
}

/*
TestRequester_ClientErrorIsFinal does not retry a 404.
*/
func TestRequester_ClientErrorIsFinal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(writer, "no such season", http.StatusNotFound)
	}))
	defer server.Close()

	var out map[string]any
	err := newRequester("test").DoJSON(context.Background(), getter(server.URL), &out)

	var statusErr *source.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "no such season", statusErr.Body)
	assert.False(t, statusErr.Transient())
	assert.Equal(t, int32(1), calls.Load())
}

/*
TestRequester_GivesUp returns the last transient failure after the final
attempt.
*/
func TestRequester_GivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var out map[string]any
	err := newRequester("test").DoJSON(context.Background(), getter(server.URL), &out)

	var statusErr *source.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

/*
TestRequester_DecodeFailure is not retried.
*/
func TestRequester_DecodeFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = writer.Write([]byte(`{not json`))
	}))
	defer server.Close()

	var out map[string]any
	err := newRequester("test").DoJSON(context.Background(), getter(server.URL), &out)

	assert.ErrorContains(t, err, "decode response")
	assert.Equal(t, int32(1), calls.Load())
}

/*
TestRequester_Cancelled stops before sending when the context is done.
*/
func TestRequester_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	requester := source.NewRequester(source.Options{
		Name:    "test",
		Limiter: source.NewLimiter(0.0001),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	assert.Error(t, requester.DoJSON(ctx, getter(server.URL), &out))
}
