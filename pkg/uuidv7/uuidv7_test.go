// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/pkg/uuidv7"
)

/*
TestTime recovers the creation instant to millisecond precision.
*/
func TestTime(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	id := uuidv7.New()
	after := time.Now()

	created, err := uuidv7.Time(id)
	require.NoError(t, err)
	assert.False(t, created.Before(before))
	assert.False(t, created.After(after))
}

func TestTime_Rejects(t *testing.T) {
	_, err := uuidv7.Time("not-a-uuid")
	assert.Error(t, err)

	_, err = uuidv7.Time("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
	assert.ErrorIs(t, err, uuidv7.ErrNotV7)
}
