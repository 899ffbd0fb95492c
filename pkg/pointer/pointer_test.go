// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anitoki/pkg/pointer"
)

func TestPointer(t *testing.T) {
	episodes := pointer.To(12)
	*episodes++
	assert.Equal(t, 13, pointer.Val(episodes))

	assert.Equal(t, 0, pointer.Val[int](nil))
	assert.Equal(t, "", pointer.Text(nil))
	assert.Equal(t, "23:00", pointer.Text(pointer.To(" 23:00\t")))
}
