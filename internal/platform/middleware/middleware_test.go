// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/platform/constants"
	"github.com/taibuivan/anitoki/internal/platform/ctxutil"
	"github.com/taibuivan/anitoki/internal/platform/middleware"
	"github.com/taibuivan/anitoki/internal/platform/sec"
)

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService("test-secret", constants.VisitorIssuer)
	require.NoError(t, err)
	return tokens
}

// visitorEcho writes the visitor id seen by the handler.
var visitorEcho = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	_, _ = writer.Write([]byte(ctxutil.GetVisitorID(request.Context())))
})

/*
TestVisitor_IssuesCookie gives a new visitor an identity and a cookie.
*/
func TestVisitor_IssuesCookie(t *testing.T) {
	handler := middleware.Visitor(newTokens(t), false)(visitorEcho)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.VisitorCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, recorder.Body.String())
}

/*
TestVisitor_ReusesValidCookie keeps the identity of a returning visitor.
*/
func TestVisitor_ReusesValidCookie(t *testing.T) {
	tokens := newTokens(t)
	token, claims, err := tokens.IssueVisitorToken(constants.VisitorTokenTTL)
	require.NoError(t, err)

	handler := middleware.Visitor(tokens, false)(visitorEcho)
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.VisitorCookieName, Value: token})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, claims.VisitorID(), recorder.Body.String())
	assert.Empty(t, recorder.Result().Cookies())
}

/*
TestVisitor_ReplacesInvalidCookie issues a new identity for a forged cookie.
*/
func TestVisitor_ReplacesInvalidCookie(t *testing.T) {
	handler := middleware.Visitor(newTokens(t), true)(visitorEcho)
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.VisitorCookieName, Value: "forged"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.NotEqual(t, "forged", cookies[0].Value)
}

/*
TestRequireVisitor rejects anonymous contexts with 401.
*/
func TestRequireVisitor(t *testing.T) {
	handler := middleware.RequireVisitor(visitorEcho)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
}

type env struct{ dev bool }

func (e env) IsDevelopment() bool { return e.dev }

/*
TestCORS allows the app domain and configured extras in production.
*/
func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.CORS(env{dev: false}, "https://partner.example, ")(ok)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://anitoki.app", true},
		{"https://www.anitoki.app", true},
		{"https://partner.example", true},
		{"https://evil-anitoki.app", false},
		{"http://anitoki.app", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set(constants.HeaderOrigin, "https://anitoki.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRateLimitWith rejects a client once its burst is spent.
*/
func TestRateLimitWith(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 0.001, 2)(visitorEcho)

	codes := make([]int, 0, 3)
	var recorder *httptest.ResponseRecorder
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:5000"
		recorder = httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1", recorder.Header().Get("Retry-After"))
	assert.Contains(t, recorder.Body.String(), "RATE_LIMITED")
}

/*
TestRequestID propagates a client id and generates one when absent.
*/
func TestRequestID(t *testing.T) {
	echo := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(ctxutil.GetRequestID(request.Context())))
	})
	handler := middleware.RequestID()(echo)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "abc", recorder.Body.String())

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
	assert.Equal(t, recorder.Header().Get(constants.HeaderXRequestID), recorder.Body.String())
}
