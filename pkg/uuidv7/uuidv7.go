// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates and inspects time-ordered UUIDv7 values.
//
// Visitor identities use it, so an id records when its visitor was first
// seen.
package uuidv7

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotV7 reports a well-formed UUID of another version.
var ErrNotV7 = errors.New("uuidv7: not a version 7 UUID")

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}
	return id.String()
}

// Time parses id and returns its embedded creation time.
func Time(id string) (time.Time, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("uuidv7: %w", err)
	}
	if parsed.Version() != 7 {
		return time.Time{}, ErrNotV7
	}
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), nil
}
