// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schedule is the broadcast schedule engine.

It groups airing entries by broadcast weekday, converts broadcast times from
the fixed broadcaster offset (UTC+9) into an observer's timezone, and collapses
duplicate entries. Every function in this package is pure: no I/O, no clocks,
no shared state. The reference instant is always supplied by the caller.

Pipeline:

	entries (fetched elsewhere) → Dedupe (gallery) / GroupByDay (weekly)
	                            → Localizer (per entry, for display)
*/
package schedule

import (
	"encoding/json"
	"strings"
	"time"
)

// # Broadcast Days

// Day is a canonical broadcast day key. The declaration order is the
// canonical iteration order of a grouped schedule.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	// DayUnknown is the sentinel bucket for entries with no broadcast day.
	DayUnknown
)

var dayNames = [...]string{
	Monday:     "Monday",
	Tuesday:    "Tuesday",
	Wednesday:  "Wednesday",
	Thursday:   "Thursday",
	Friday:     "Friday",
	Saturday:   "Saturday",
	Sunday:     "Sunday",
	DayUnknown: "Unknown",
}

// Days lists every day key in canonical order, Unknown last.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday, DayUnknown}
}

// String returns the English day name, or "Unknown".
func (d Day) String() string {
	if d < Monday || d > DayUnknown {
		return dayNames[DayUnknown]
	}
	return dayNames[d]
}

// Known reports whether d is one of Monday..Sunday.
func (d Day) Known() bool {
	return d >= Monday && d <= Sunday
}

// Weekday converts d to a [time.Weekday]. The second value is false for
// [DayUnknown].
func (d Day) Weekday() (time.Weekday, bool) {
	if !d.Known() {
		return time.Sunday, false
	}
	// Monday=0 here, Sunday=0 in package time.
	return time.Weekday((int(d) + 1) % 7), true
}

// FromWeekday converts a [time.Weekday] into a Day.
func FromWeekday(w time.Weekday) Day {
	return Day((int(w) + 6) % 7)
}

// ParseDay resolves an upstream day name. Singular and plural English forms
// are accepted ("Monday", "Mondays"), ignoring case and surrounding space.
// Anything else maps to [DayUnknown].
func ParseDay(raw string) Day {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.TrimSuffix(name, "s")
	for d := Monday; d <= Sunday; d++ {
		if strings.ToLower(dayNames[d]) == name {
			return d
		}
	}
	return DayUnknown
}

// MarshalJSON encodes the day as its name.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a day name. Unrecognised names become [DayUnknown].
func (d *Day) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*d = ParseDay(name)
	return nil
}
