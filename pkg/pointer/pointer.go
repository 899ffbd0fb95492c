// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer reads and builds the optional fields of upstream payloads,
// where JSON null decodes to a nil pointer.
package pointer

import "strings"

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val returns *p, or the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Text returns *p without surrounding whitespace, or "" when p is nil.
func Text(p *string) string {
	return strings.TrimSpace(Val(p))
}
