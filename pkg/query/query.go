// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued parameters such as ?genres=action,drama.
package query

import (
	"strings"

	"github.com/taibuivan/anitoki/pkg/slice"
)

// StringSlice splits a comma-separated value into trimmed, non-empty items.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	return slice.MapNonZero(strings.Split(val, ","), strings.TrimSpace)
}
