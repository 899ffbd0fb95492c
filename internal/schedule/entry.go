// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

import (
	"fmt"
	"strings"
)

// # Entry Model

// Entry is one airable unit: a season anime or a scheduled episode.
//
// Entries are values. Nothing in this package mutates an Entry after it has
// been decoded from an upstream payload.
type Entry struct {
	// ID is the stable upstream identifier used for deduplication.
	ID int `json:"id"`
	// MediaID identifies the underlying show. Equal to ID for season entries.
	MediaID int `json:"media_id"`

	Titles    Titles        `json:"titles"`
	Broadcast BroadcastTime `json:"broadcast"`

	// Display-only attributes.
	Episodes *int     `json:"episodes,omitempty"`
	Episode  *int     `json:"episode,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Status   string   `json:"status,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// Titles holds the display title variants reported upstream.
type Titles struct {
	Native  string `json:"native,omitempty"`
	Romaji  string `json:"romaji,omitempty"`
	English string `json:"english,omitempty"`
}

// # Title Policy

// TitlePolicy selects which title variant is preferred for display.
type TitlePolicy string

const (
	TitleEnglish TitlePolicy = "english"
	TitleRomaji  TitlePolicy = "romaji"
	TitleNative  TitlePolicy = "native"
)

// ParseTitlePolicy validates a policy name. The empty string selects
// [TitleEnglish].
func ParseTitlePolicy(raw string) (TitlePolicy, error) {
	switch policy := TitlePolicy(strings.ToLower(strings.TrimSpace(raw))); policy {
	case "":
		return TitleEnglish, nil
	case TitleEnglish, TitleRomaji, TitleNative:
		return policy, nil
	default:
		return "", fmt.Errorf("schedule: unknown title policy %q", raw)
	}
}

// Preferred returns the first non-empty title in the policy's fallback order:
//   - english: English → Romaji → Native
//   - romaji:  Romaji → English → Native
//   - native:  Native → Romaji → English
//
// Unrecognised policies behave like english. The result is empty only when
// every variant is empty.
func (t Titles) Preferred(policy TitlePolicy) string {
	switch policy {
	case TitleRomaji:
		return firstNonEmpty(t.Romaji, t.English, t.Native)
	case TitleNative:
		return firstNonEmpty(t.Native, t.Romaji, t.English)
	default:
		return firstNonEmpty(t.English, t.Romaji, t.Native)
	}
}

// Title returns the display title of e under policy.
func (e Entry) Title(policy TitlePolicy) string {
	return e.Titles.Preferred(policy)
}

// HasGenre reports whether e carries genre, ignoring case.
func (e Entry) HasGenre(genre string) bool {
	for _, g := range e.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
