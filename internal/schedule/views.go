// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

import (
	"strings"
	"time"
)

// # Derived Views

// Today returns the entries that air on ref's weekday in the observer's
// location. Entries that cannot be localized are excluded.
func Today(entries []Entry, localizer Localizer, ref time.Time) []Entry {
	today := ref.In(localizer.location()).Weekday()

	matches := make([]Entry, 0)
	for _, entry := range entries {
		localized, ok := localizer.Localize(entry.Broadcast, ref)
		if !ok {
			continue
		}
		if localized.At.Weekday() == today {
			matches = append(matches, entry)
		}
	}
	return matches
}

// FilterGenres keeps entries tagged with at least one of genres (case
// insensitive). An empty genre list keeps every entry.
func FilterGenres(entries []Entry, genres []string) []Entry {
	wanted := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			wanted = append(wanted, g)
		}
	}

	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if len(wanted) == 0 || hasAnyGenre(entry, wanted) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func hasAnyGenre(entry Entry, genres []string) bool {
	for _, g := range genres {
		if entry.HasGenre(g) {
			return true
		}
	}
	return false
}
