// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"time"

	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/pkg/pagination"
	"github.com/taibuivan/anitoki/pkg/slice"
	"github.com/taibuivan/anitoki/pkg/slug"
)

// TimeNotAvailable labels entries whose broadcast cannot be localized.
const TimeNotAvailable = "Time not available"

// View carries the observer-specific rendering options of one request.
type View struct {
	// Location is the observer's timezone. Nil means UTC.
	Location *time.Location
	Locale   schedule.Locale
	Titles   schedule.TitlePolicy
	Genres   []string

	// At overrides the reference instant. Zero means the service clock.
	At time.Time
}

func (v View) localizer() schedule.Localizer {
	return schedule.Localizer{Location: v.Location, Locale: v.Locale}
}

func (v View) timezone() string {
	if v.Location == nil {
		return time.UTC.String()
	}
	return v.Location.String()
}

// # Rendered Shapes

// Item is an entry decorated for display.
type Item struct {
	ID      int    `json:"id"`
	MediaID int    `json:"media_id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`

	Titles    schedule.Titles        `json:"titles"`
	Broadcast schedule.BroadcastTime `json:"broadcast"`

	// Localized is null when the broadcast cannot be localized.
	Localized *schedule.LocalizedTime `json:"localized"`
	TimeLabel string                  `json:"time_label"`

	Episodes *int     `json:"episodes,omitempty"`
	Episode  *int     `json:"episode,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Status   string   `json:"status,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// Bucket is one rendered day of a grouped schedule.
type Bucket struct {
	Day     schedule.Day `json:"day"`
	Label   string       `json:"label"`
	Entries []Item       `json:"entries"`
}

// TodayView lists the entries airing on the observer's current weekday.
type TodayView struct {
	Day     string `json:"day"`
	Entries []Item `json:"entries"`
}

// Dashboard is the season overview.
type Dashboard struct {
	Total       int       `json:"total"`
	Today       TodayView `json:"today"`
	Gallery     []Item    `json:"gallery"`
	Weekly      []Bucket  `json:"weekly"`
	GeneratedAt time.Time `json:"generated_at"`
	Timezone    string    `json:"timezone"`
	Locale      string    `json:"locale"`
}

// GalleryPage is one page of the deduplicated season gallery.
type GalleryPage struct {
	Items []Item          `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// AiringBoard is the upcoming-episode schedule grouped by broadcast day.
type AiringBoard struct {
	Total       int       `json:"total"`
	Days        []Bucket  `json:"days"`
	GeneratedAt time.Time `json:"generated_at"`
	Timezone    string    `json:"timezone"`
	Locale      string    `json:"locale"`
}

// # Rendering

type renderer struct {
	view      View
	localizer schedule.Localizer
	ref       time.Time
}

func newRenderer(view View, ref time.Time) renderer {
	return renderer{view: view, localizer: view.localizer(), ref: ref}
}

func (r renderer) item(entry schedule.Entry) Item {
	title := entry.Title(r.view.Titles)
	item := Item{
		ID:        entry.ID,
		MediaID:   entry.MediaID,
		Title:     title,
		Slug:      slug.From(title),
		Titles:    entry.Titles,
		Broadcast: entry.Broadcast,
		TimeLabel: TimeNotAvailable,
		Episodes:  entry.Episodes,
		Episode:   entry.Episode,
		Genres:    entry.Genres,
		ImageURL:  entry.ImageURL,
		Score:     entry.Score,
		Status:    entry.Status,
		URL:       entry.URL,
	}

	if localized, ok := r.localizer.Localize(entry.Broadcast, r.ref); ok {
		item.Localized = &localized
		item.TimeLabel = localized.LocalTimestamp
	}
	return item
}

func (r renderer) items(entries []schedule.Entry) []Item {
	if len(entries) == 0 {
		return []Item{}
	}
	return slice.Map(entries, r.item)
}

func (r renderer) buckets(groups []schedule.DayBucket) []Bucket {
	if len(groups) == 0 {
		return []Bucket{}
	}
	return slice.Map(groups, func(group schedule.DayBucket) Bucket {
		return Bucket{
			Day:     group.Day,
			Label:   r.dayLabel(group.Day),
			Entries: r.items(group.Entries),
		}
	})
}

// dayLabel names a source day in the display locale.
func (r renderer) dayLabel(day schedule.Day) string {
	weekday, ok := day.Weekday()
	if !ok {
		return day.String()
	}
	return r.view.Locale.Weekday(weekday)
}
