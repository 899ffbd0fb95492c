// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

import "time"

// # Broadcast Time Localizer

// LocalizedTime is a broadcast slot expressed in the observer's timezone.
// It is a plain record with no behaviour and serializes as-is.
type LocalizedTime struct {
	// At is the broadcast instant in the observer's location.
	At time.Time `json:"at"`

	LocalWeekday   string `json:"local_weekday"`
	LocalClock     string `json:"local_clock"`
	LocalTimestamp string `json:"local_timestamp"`

	// SourceWeekday and SourceClock echo the slot as the broadcaster lists it.
	SourceWeekday string `json:"source_weekday"`
	SourceClock   string `json:"source_clock"`
}

// Localizer converts broadcast slots into an observer's wall-clock time.
type Localizer struct {
	// Location is the observer's timezone. Nil means UTC.
	Location *time.Location
	// Locale drives every formatted string. The zero value means en-US.
	Locale Locale
}

// NewLocalizer returns a Localizer for the runtime's local timezone, read at
// call time, with the default display locale.
func NewLocalizer() Localizer {
	return Localizer{Location: time.Local, Locale: DefaultLocale()}
}

func (l Localizer) location() *time.Location {
	if l.Location == nil {
		return time.UTC
	}
	return l.Location
}

// Localize dispatches on the broadcast variant. Weekly slots are resolved
// against ref; instants ignore it.
func (l Localizer) Localize(b BroadcastTime, ref time.Time) (LocalizedTime, bool) {
	switch b.Kind() {
	case BroadcastWeekly:
		return l.LocalizeWeekly(b.Day(), b.Clock(), ref)
	case BroadcastInstant:
		at, _ := b.Instant()
		return l.LocalizeInstant(at)
	default:
		return LocalizedTime{}, false
	}
}

// LocalizeWeekly resolves this week's occurrence of day at clock (UTC+9)
// relative to ref, and expresses it in the observer's location.
//
// The reference weekday is taken in [SourceZone]. The occurrence lies
// (target - reference + 7) mod 7 days ahead. An offset of zero is today even
// when the clock has already passed; it never rolls over to next week.
//
// It reports false when day is unknown or clock is absent or not a valid
// "HH:MM".
func (l Localizer) LocalizeWeekly(day Day, clock string, ref time.Time) (LocalizedTime, bool) {
	target, ok := day.Weekday()
	if !ok {
		return LocalizedTime{}, false
	}

	hour, minute, ok := parseClock(clock)
	if !ok {
		return LocalizedTime{}, false
	}

	reference := ref.In(SourceZone)
	offset := (int(target) - int(reference.Weekday()) + 7) % 7

	broadcast := time.Date(
		reference.Year(), reference.Month(), reference.Day()+offset,
		hour, minute, 0, 0,
		SourceZone,
	)

	return l.render(broadcast), true
}

// LocalizeInstant expresses an absolute airing instant in the observer's
// location. It reports false for the zero time.
func (l Localizer) LocalizeInstant(at time.Time) (LocalizedTime, bool) {
	if at.IsZero() {
		return LocalizedTime{}, false
	}
	return l.render(at), true
}

func (l Localizer) render(broadcast time.Time) LocalizedTime {
	local := broadcast.In(l.location())
	source := broadcast.In(SourceZone)

	return LocalizedTime{
		At:             local,
		LocalWeekday:   l.Locale.Weekday(local.Weekday()),
		LocalClock:     l.Locale.Clock(local),
		LocalTimestamp: l.Locale.Timestamp(local),
		SourceWeekday:  l.Locale.Weekday(source.Weekday()),
		SourceClock:    source.Format("15:04"),
	}
}
