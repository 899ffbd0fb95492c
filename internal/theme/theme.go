// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package theme stores each visitor's light/dark preference and resolves the
theme to display.

An explicit choice always wins. Without one the visitor's reported system
preference is followed, and later system changes never override an explicit
choice. Changes in the resolved theme are published to subscribers.
*/
package theme

import (
	"fmt"
	"strings"
	"time"
)

// Theme is a display theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme validates a theme name, ignoring case.
func ParseTheme(raw string) (Theme, error) {
	switch theme := Theme(strings.ToLower(strings.TrimSpace(raw))); theme {
	case Light, Dark:
		return theme, nil
	default:
		return "", fmt.Errorf("theme: unknown theme %q", raw)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Source tells where a resolved theme came from.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceSystem   Source = "system"
)

// Record is the stored preference of one visitor. The zero value means
// "no explicit choice, light system preference".
type Record struct {
	Explicit   *Theme    `json:"explicit"`
	SystemDark bool      `json:"system_dark"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// State is the resolved theme.
type State struct {
	Theme  Theme  `json:"theme"`
	Source Source `json:"source"`
}

// Resolve applies the precedence rules to r.
func (r Record) Resolve() State {
	if r.Explicit != nil {
		return State{Theme: *r.Explicit, Source: SourceExplicit}
	}
	if r.SystemDark {
		return State{Theme: Dark, Source: SourceSystem}
	}
	return State{Theme: Light, Source: SourceSystem}
}
