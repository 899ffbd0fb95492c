// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anitoki/internal/schedule"
)

/*
TestDedupe_KeepsFirstOccurrence keeps the first record per ID in first-seen
order.
*/
func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	entries := []schedule.Entry{
		weekly(3, schedule.Monday, "10:00", "three"),
		weekly(1, schedule.Monday, "10:00", "one"),
		weekly(3, schedule.Friday, "22:00", "three again"),
		weekly(2, schedule.Monday, "10:00", "two"),
		weekly(1, schedule.Sunday, "01:00", "one again"),
	}

	unique := schedule.Dedupe(entries)

	assert.Equal(t, []int{3, 1, 2}, ids(unique))
	assert.Equal(t, "three", unique[0].Titles.Romaji)
	assert.Equal(t, "one", unique[1].Titles.Romaji)
}

/*
TestDedupe_Idempotent applies the deduplicator twice.
*/
func TestDedupe_Idempotent(t *testing.T) {
	entries := []schedule.Entry{
		weekly(5, schedule.Monday, "10:00", "a"),
		weekly(5, schedule.Monday, "10:00", "b"),
		weekly(4, schedule.Monday, "10:00", "c"),
	}

	once := schedule.Dedupe(entries)
	assert.Equal(t, once, schedule.Dedupe(once))
	assert.Len(t, entries, 3)
}

/*
TestDedupe_Empty returns an empty, non-nil slice.
*/
func TestDedupe_Empty(t *testing.T) {
	assert.NotNil(t, schedule.Dedupe(nil))
	assert.Empty(t, schedule.Dedupe([]schedule.Entry{}))
}

/*
TestDedupeBy works with arbitrary keys.
*/
func TestDedupeBy(t *testing.T) {
	words := []string{"Frieren", "frieren", "Dandadan", "FRIEREN"}

	unique := schedule.DedupeBy(words, strings.ToLower)

	assert.Equal(t, []string{"Frieren", "Dandadan"}, unique)
}
