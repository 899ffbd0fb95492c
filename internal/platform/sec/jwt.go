// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the signing primitives behind anonymous visitor
// identities.
//
// # Architecture
//
// A visitor is identified by a UUIDv7 carried as the subject of an HS256 JWT
// stored in a cookie. The HMAC key is never configured directly: it is
// derived from the process secret with HKDF (see [DeriveKey]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/anitoki/pkg/uuidv7"
)

// VisitorClaims is the payload of a visitor token.
type VisitorClaims struct {
	jwt.RegisteredClaims
}

// VisitorID returns the stable visitor identifier (the token subject).
func (c *VisitorClaims) VisitorID() string {
	return c.Subject
}

// FirstSeen returns when the visitor identity was minted.
func (c *VisitorClaims) FirstSeen() time.Time {
	seen, err := uuidv7.Time(c.Subject)
	if err != nil {
		return time.Time{}
	}
	return seen
}

// TokenService issues and verifies visitor tokens using HS256.
type TokenService struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewTokenService derives the signing key from secret and returns a
// TokenService for issuer.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	return &TokenService{key: key, issuer: issuer, now: time.Now}, nil
}

// IssueVisitorToken mints a token for a brand-new visitor.
func (service *TokenService) IssueVisitorToken(timeToLive time.Duration) (string, *VisitorClaims, error) {
	currentTime := service.now()
	claims := &VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuidv7.New(),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.key)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign visitor token: %w", err)
	}

	return signedToken, claims, nil
}

// VerifyVisitorToken checks the signature, issuer and expiry of a token.
func (service *TokenService) VerifyVisitorToken(tokenString string) (*VisitorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VisitorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.key, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid visitor token: %w", err)
	}

	claims, ok := token.Claims.(*VisitorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid visitor token claims")
	}

	if claims.Subject == "" {
		return nil, errors.New("sec: visitor token without subject")
	}
	if _, err := uuidv7.Time(claims.Subject); err != nil {
		return nil, fmt.Errorf("sec: visitor token subject: %w", err)
	}

	return claims, nil
}
