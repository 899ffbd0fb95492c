// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// SourceOffset is the fixed broadcaster offset in seconds east of UTC.
// It has no daylight-saving adjustment.
const SourceOffset = 9 * 60 * 60

// SourceZone is the zone every upstream broadcast time is expressed in.
var SourceZone = time.FixedZone("UTC+9", SourceOffset)

// # Broadcast Union

// BroadcastKind tags the variant held by a [BroadcastTime].
type BroadcastKind uint8

const (
	// BroadcastUnknown means nothing is known about the broadcast slot.
	BroadcastUnknown BroadcastKind = iota
	// BroadcastWeekly is a recurring weekday and "HH:MM" in [SourceZone].
	BroadcastWeekly
	// BroadcastInstant is an absolute airing instant.
	BroadcastInstant
)

var broadcastKindNames = [...]string{
	BroadcastUnknown: "unknown",
	BroadcastWeekly:  "weekly",
	BroadcastInstant: "instant",
}

func (k BroadcastKind) String() string {
	if int(k) >= len(broadcastKindNames) {
		return broadcastKindNames[BroadcastUnknown]
	}
	return broadcastKindNames[k]
}

// BroadcastTime is the normalized broadcast slot of an entry.
//
// The zero value is the Unknown variant. A weekly slot may carry an absent
// day ([DayUnknown]) or an absent clock (""), exactly as upstream reports it.
type BroadcastTime struct {
	kind  BroadcastKind
	day   Day
	clock string
	at    time.Time
}

// Weekly builds the weekday + time-of-day variant. A day outside
// Monday..Sunday is stored as [DayUnknown].
func Weekly(day Day, clock string) BroadcastTime {
	if !day.Known() {
		day = DayUnknown
	}
	return BroadcastTime{kind: BroadcastWeekly, day: day, clock: clock}
}

// At builds the absolute-instant variant. A zero instant yields Unknown.
func At(instant time.Time) BroadcastTime {
	if instant.IsZero() {
		return BroadcastTime{}
	}
	return BroadcastTime{kind: BroadcastInstant, at: instant.UTC()}
}

// AtUnix builds the absolute-instant variant from Unix seconds.
func AtUnix(seconds int64) BroadcastTime {
	if seconds <= 0 {
		return BroadcastTime{}
	}
	return At(time.Unix(seconds, 0))
}

// Kind returns the variant tag.
func (b BroadcastTime) Kind() BroadcastKind { return b.kind }

// Day returns the broadcast weekday in [SourceZone]. For the instant
// variant it is derived from the instant.
func (b BroadcastTime) Day() Day {
	switch b.kind {
	case BroadcastWeekly:
		return b.day
	case BroadcastInstant:
		return FromWeekday(b.at.In(SourceZone).Weekday())
	default:
		return DayUnknown
	}
}

// Clock returns the "HH:MM" time of day in [SourceZone], or "" when absent.
func (b BroadcastTime) Clock() string {
	switch b.kind {
	case BroadcastWeekly:
		return b.clock
	case BroadcastInstant:
		return b.at.In(SourceZone).Format("15:04")
	default:
		return ""
	}
}

// Instant returns the absolute instant of the instant variant.
func (b BroadcastTime) Instant() (time.Time, bool) {
	if b.kind != BroadcastInstant {
		return time.Time{}, false
	}
	return b.at, true
}

// Normalize converts the instant variant into the equivalent weekly slot in
// [SourceZone]. Other variants are returned unchanged.
func (b BroadcastTime) Normalize() BroadcastTime {
	if b.kind != BroadcastInstant {
		return b
	}
	return Weekly(b.Day(), b.Clock())
}

// Complete reports whether the slot carries enough to be localized.
func (b BroadcastTime) Complete() bool {
	switch b.kind {
	case BroadcastWeekly:
		_, _, ok := parseClock(b.clock)
		return b.day.Known() && ok
	case BroadcastInstant:
		return true
	default:
		return false
	}
}

// minuteKey orders broadcasts for [ByAiringTime]. Weekly slots order by
// minutes after midnight, instants by Unix seconds.
func (b BroadcastTime) minuteKey() (int64, bool) {
	switch b.kind {
	case BroadcastWeekly:
		hour, minute, ok := parseClock(b.clock)
		if !ok {
			return 0, false
		}
		return int64(hour*60 + minute), true
	case BroadcastInstant:
		return b.at.Unix(), true
	default:
		return 0, false
	}
}

// # Serialization

type broadcastJSON struct {
	Kind string     `json:"kind"`
	Day  *Day       `json:"day,omitempty"`
	Time string     `json:"time,omitempty"`
	At   *time.Time `json:"at,omitempty"`
}

// MarshalJSON encodes the union with an explicit "kind" tag.
func (b BroadcastTime) MarshalJSON() ([]byte, error) {
	payload := broadcastJSON{Kind: b.kind.String()}
	switch b.kind {
	case BroadcastWeekly:
		day := b.day
		payload.Day = &day
		payload.Time = b.clock
	case BroadcastInstant:
		at := b.at.UTC()
		payload.At = &at
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes the form written by [BroadcastTime.MarshalJSON].
func (b *BroadcastTime) UnmarshalJSON(data []byte) error {
	var payload broadcastJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	switch payload.Kind {
	case "weekly":
		day := DayUnknown
		if payload.Day != nil {
			day = *payload.Day
		}
		*b = Weekly(day, payload.Time)
	case "instant":
		if payload.At == nil {
			return fmt.Errorf("schedule: instant broadcast without \"at\"")
		}
		*b = At(*payload.At)
	case "unknown", "":
		*b = BroadcastTime{}
	default:
		return fmt.Errorf("schedule: unknown broadcast kind %q", payload.Kind)
	}
	return nil
}

// # Clock Parsing

// parseClock strictly parses "HH:MM" (two ASCII digits each side,
// 00 ≤ HH ≤ 23, 00 ≤ MM ≤ 59).
func parseClock(clock string) (hour, minute int, ok bool) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, 0, false
	}

	digits := [4]byte{clock[0], clock[1], clock[3], clock[4]}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
	}

	hour = int(clock[0]-'0')*10 + int(clock[1]-'0')
	minute = int(clock[3]-'0')*10 + int(clock[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
