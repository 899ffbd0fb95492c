// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/anitoki/internal/platform/apperr"
	"github.com/taibuivan/anitoki/internal/platform/constants"
	"github.com/taibuivan/anitoki/internal/platform/ctxutil"
	"github.com/taibuivan/anitoki/internal/platform/respond"
	"github.com/taibuivan/anitoki/internal/platform/sec"
)

// VisitorTokens issues and verifies anonymous visitor tokens.
//
// Implemented by [*sec.TokenService]; tests may substitute a fake.
type VisitorTokens interface {
	IssueVisitorToken(timeToLive time.Duration) (string, *sec.VisitorClaims, error)
	VerifyVisitorToken(token string) (*sec.VisitorClaims, error)
}

// Visitor identifies the caller by the visitor cookie.
//
// # Flow
//  1. Read the cookie and verify it.
//  2. If absent or invalid, issue a fresh token and set the cookie.
//  3. Inject [*sec.VisitorClaims] into the request context.
//
// Issuing failures are logged and the request proceeds anonymously.
func Visitor(tokens VisitorTokens, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Existing identity ──────────────────────────────────────────
			if cookie, err := request.Cookie(constants.VisitorCookieName); err == nil {
				if claims, err := tokens.VerifyVisitorToken(cookie.Value); err == nil {
					next.ServeHTTP(writer, request.WithContext(ctxutil.WithVisitor(request.Context(), claims)))
					return
				}
			}

			// ── 2. New identity ───────────────────────────────────────────────
			token, claims, err := tokens.IssueVisitorToken(constants.VisitorTokenTTL)
			if err != nil {
				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "visitor_issue_failed",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			http.SetCookie(writer, &http.Cookie{
				Name:     constants.VisitorCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(constants.VisitorTokenTTL.Seconds()),
				HttpOnly: true,
				Secure:   secureCookie,
				SameSite: http.SameSiteLaxMode,
			})

			// ── 3. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithVisitor(request.Context(), claims)))
		})
	}
}

// RequireVisitor blocks requests that carry no visitor identity.
//
// Must be registered in the router AFTER [Visitor].
func RequireVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetVisitor(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Visitor identity required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
