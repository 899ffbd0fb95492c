// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anitoki/pkg/query"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"action", []string{"action"}},
		{" action , Slice of Life ,", []string{"action", "Slice of Life"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, query.StringSlice(tt.in), "input %q", tt.in)
	}
}
