// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anitoki/internal/schedule"
)

/*
TestToday selects entries by their localized weekday, not the broadcaster's.
*/
func TestToday(t *testing.T) {
	// Monday 12:00 UTC is Monday 21:00 at UTC+9.
	ref := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	localizer := schedule.Localizer{Location: time.UTC}

	entries := []schedule.Entry{
		weekly(1, schedule.Monday, "10:00", "Monday 01:00 UTC"),
		weekly(2, schedule.Tuesday, "08:00", "Monday 23:00 UTC"),
		weekly(3, schedule.Monday, "08:00", "Sunday 23:00 UTC"),
		weekly(4, schedule.DayUnknown, "08:00", "Unknown"),
		weekly(5, schedule.Monday, "", "No time"),
		{ID: 6, Broadcast: schedule.At(ref.Add(2 * time.Hour))},
	}

	assert.Equal(t, []int{1, 2, 6}, ids(schedule.Today(entries, localizer, ref)))
	assert.Empty(t, schedule.Today(nil, localizer, ref))
}

/*
TestFilterGenres keeps entries carrying any requested genre.
*/
func TestFilterGenres(t *testing.T) {
	entries := []schedule.Entry{
		{ID: 1, Genres: []string{"Action"}},
		{ID: 2, Genres: []string{"Comedy", "Romance"}},
		{ID: 3},
	}

	assert.Equal(t, []int{1, 2, 3}, ids(schedule.FilterGenres(entries, nil)))
	assert.Equal(t, []int{1, 2, 3}, ids(schedule.FilterGenres(entries, []string{" ", ""})))
	assert.Equal(t, []int{2}, ids(schedule.FilterGenres(entries, []string{"romance"})))
	assert.Equal(t, []int{1, 2}, ids(schedule.FilterGenres(entries, []string{"Action", "Comedy"})))
}
