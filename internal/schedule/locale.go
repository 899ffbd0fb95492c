// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// # Display Locales

// Locale formats weekday names and wall-clock times for display.
// Every string field of a [LocalizedTime] is produced by the same Locale.
type Locale struct {
	tag       language.Tag
	weekdays  [7]string // indexed by time.Weekday
	clock     func(t time.Time) string
	timestamp func(t time.Time) string
}

var englishWeekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var (
	// LocaleEnUS renders "Monday", "04:30 AM" and "1/5/2026, 4:30:00 AM".
	LocaleEnUS = Locale{
		tag:      language.AmericanEnglish,
		weekdays: englishWeekdays,
		clock: func(t time.Time) string {
			return t.Format("03:04 PM")
		},
		timestamp: func(t time.Time) string {
			return t.Format("1/2/2006, 3:04:05 PM")
		},
	}

	// LocaleEnGB renders "Monday", "04:30 am" and "05/01/2026, 04:30:00".
	LocaleEnGB = Locale{
		tag:      language.BritishEnglish,
		weekdays: englishWeekdays,
		clock: func(t time.Time) string {
			return t.Format("03:04 pm")
		},
		timestamp: func(t time.Time) string {
			return t.Format("02/01/2006, 15:04:05")
		},
	}

	// LocaleJaJP renders "月曜日", "午前04:30" and "2026/1/5 4:30:00".
	LocaleJaJP = Locale{
		tag:      language.MustParse("ja-JP"),
		weekdays: [7]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"},
		clock: func(t time.Time) string {
			marker := "午前"
			if t.Hour() >= 12 {
				marker = "午後"
			}
			return marker + t.Format("03:04")
		},
		timestamp: func(t time.Time) string {
			return fmt.Sprintf("%d/%d/%d %d:%02d:%02d",
				t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
		},
	}
)

// supportedLocales is ordered to match the tags handed to localeMatcher.
var supportedLocales = []Locale{LocaleEnUS, LocaleEnGB, LocaleJaJP}

var localeMatcher = language.NewMatcher([]language.Tag{
	LocaleEnUS.tag,
	LocaleEnGB.tag,
	LocaleJaJP.tag,
})

// DefaultLocale is used when no locale is requested or none matches.
func DefaultLocale() Locale { return LocaleEnUS }

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	if l.clock == nil {
		return LocaleEnUS.tag
	}
	return l.tag
}

// String returns the BCP 47 code, e.g. "en-US".
func (l Locale) String() string { return l.Tag().String() }

// Weekday returns the localized name of w.
func (l Locale) Weekday(w time.Weekday) string {
	l = l.orDefault()
	return l.weekdays[int(w)%7]
}

// Clock formats t as a 12-hour clock with a zero-padded hour and minute.
func (l Locale) Clock(t time.Time) string { return l.orDefault().clock(t) }

// Timestamp formats t as a full date and time.
func (l Locale) Timestamp(t time.Time) string { return l.orDefault().timestamp(t) }

func (l Locale) orDefault() Locale {
	if l.clock == nil || l.timestamp == nil {
		return LocaleEnUS
	}
	return l
}

// ResolveLocale maps a BCP 47 code onto the closest supported locale.
// The empty string selects [DefaultLocale]. Malformed codes are an error.
func ResolveLocale(code string) (Locale, error) {
	if code == "" {
		return DefaultLocale(), nil
	}

	tag, err := language.Parse(code)
	if err != nil {
		return Locale{}, fmt.Errorf("schedule: invalid locale %q: %w", code, err)
	}
	return match(tag), nil
}

// MatchLocale picks the best supported locale for an Accept-Language header.
// It never fails; unusable headers select [DefaultLocale].
func MatchLocale(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale()
	}
	return match(tags...)
}

func match(tags ...language.Tag) Locale {
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supportedLocales) {
		return DefaultLocale()
	}
	return supportedLocales[index]
}
