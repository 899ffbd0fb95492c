// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anilist

import (
	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/pkg/pointer"
)

type graphQLRequest struct {
	Query     string    `json:"query"`
	Variables variables `json:"variables"`
}

type variables struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	From    int64 `json:"from"`
	To      int64 `json:"to"`
}

type airingResponse struct {
	Data struct {
		Page struct {
			PageInfo struct {
				HasNextPage bool `json:"hasNextPage"`
				CurrentPage int  `json:"currentPage"`
			} `json:"pageInfo"`
			AiringSchedules []airingSchedule `json:"airingSchedules"`
		} `json:"Page"`
	} `json:"data"`
	Errors graphQLErrors `json:"errors"`
}

type graphQLErrors []struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type airingSchedule struct {
	ID       int   `json:"id"`
	AiringAt int64 `json:"airingAt"`
	Episode  int   `json:"episode"`
	Media    media `json:"media"`
}

type media struct {
	ID           int      `json:"id"`
	IsAdult      bool     `json:"isAdult"`
	Episodes     *int     `json:"episodes"`
	Genres       []string `json:"genres"`
	SiteURL      string   `json:"siteUrl"`
	AverageScore *int     `json:"averageScore"`
	Status       string   `json:"status"`
	Title        struct {
		Romaji  *string `json:"romaji"`
		English *string `json:"english"`
		Native  *string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		Large string `json:"large"`
	} `json:"coverImage"`
}

func (row airingSchedule) entry() schedule.Entry {
	entry := schedule.Entry{
		ID:      row.ID,
		MediaID: row.Media.ID,
		Titles: schedule.Titles{
			Romaji:  pointer.Val(row.Media.Title.Romaji),
			English: pointer.Val(row.Media.Title.English),
			Native:  pointer.Val(row.Media.Title.Native),
		},
		Broadcast: schedule.AtUnix(row.AiringAt),
		Episodes:  row.Media.Episodes,
		Genres:    row.Media.Genres,
		ImageURL:  row.Media.CoverImage.Large,
		Status:    row.Media.Status,
		URL:       row.Media.SiteURL,
	}

	if row.Episode > 0 {
		entry.Episode = pointer.To(row.Episode)
	}

	// averageScore is a percentage; entries carry a ten-point score.
	if row.Media.AverageScore != nil {
		entry.Score = pointer.To(float64(*row.Media.AverageScore) / 10)
	}

	return entry
}
