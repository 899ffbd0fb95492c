// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jikan

import (
	"strings"

	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/pkg/pointer"
	"github.com/taibuivan/anitoki/pkg/slice"
)

// # Wire Types

type seasonResponse struct {
	Data       []anime    `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

type anime struct {
	MalID         int       `json:"mal_id"`
	URL           string    `json:"url"`
	Images        images    `json:"images"`
	Title         string    `json:"title"`
	TitleEnglish  *string   `json:"title_english"`
	TitleJapanese *string   `json:"title_japanese"`
	Episodes      *int      `json:"episodes"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score"`
	Broadcast     broadcast `json:"broadcast"`
	Genres        []named   `json:"genres"`
}

type images struct {
	JPG  imageSet `json:"jpg"`
	WebP imageSet `json:"webp"`
}

type imageSet struct {
	ImageURL      string `json:"image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type broadcast struct {
	Day      *string `json:"day"`
	Time     *string `json:"time"`
	Timezone *string `json:"timezone"`
	String   *string `json:"string"`
}

type named struct {
	Name string `json:"name"`
}

// # Mapping

func (a anime) entry() schedule.Entry {
	return schedule.Entry{
		ID:      a.MalID,
		MediaID: a.MalID,
		Titles: schedule.Titles{
			Romaji:  a.Title,
			English: pointer.Val(a.TitleEnglish),
			Native:  pointer.Val(a.TitleJapanese),
		},
		Broadcast: schedule.Weekly(
			schedule.ParseDay(pointer.Val(a.Broadcast.Day)),
			pointer.Text(a.Broadcast.Time),
		),
		Episodes: a.Episodes,
		Genres:   slice.MapNonZero(a.Genres, func(g named) string { return strings.TrimSpace(g.Name) }),
		ImageURL: a.Images.best(),
		Score:    a.Score,
		Status:   a.Status,
		URL:      a.URL,
	}
}

// best prefers the large WebP rendition and falls back through JPG.
func (i images) best() string {
	for _, candidate := range []string{i.WebP.LargeImageURL, i.JPG.LargeImageURL, i.WebP.ImageURL, i.JPG.ImageURL} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
