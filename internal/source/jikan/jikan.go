// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package jikan fetches the currently airing season from the Jikan REST API
(an unofficial MyAnimeList mirror) and maps it onto [schedule.Entry].

Broadcast slots are reported as a plural weekday ("Mondays") plus an
"HH:MM" clock in Japan time; both may be null.
*/
package jikan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/internal/source"
)

// Name labels this upstream in logs, errors and cache keys.
const Name = "jikan"

const (
	// DefaultBaseURL is the public v4 endpoint.
	DefaultBaseURL = "https://api.jikan.moe/v4"
	// DefaultMaxPages bounds pagination of /seasons/now.
	DefaultMaxPages = 4
)

// Client reads /seasons/now.
type Client struct {
	baseURL   string
	maxPages  int
	requester *source.Requester
}

// NewClient returns a Client. Zero values select the defaults.
func NewClient(baseURL string, maxPages int, requester *source.Requester) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxPages:  maxPages,
		requester: requester,
	}
}

// Name returns the upstream label.
func (c *Client) Name() string { return Name }

// FetchSeason walks /seasons/now page by page until the upstream reports no
// further page or MaxPages is reached. Entries are returned in upstream
// order and may contain duplicates across pages.
func (c *Client) FetchSeason(ctx context.Context) ([]schedule.Entry, error) {
	entries := make([]schedule.Entry, 0)

	for page := 1; page <= c.maxPages; page++ {
		var payload seasonResponse
		if err := c.requester.DoJSON(ctx, c.seasonRequest(page), &payload); err != nil {
			return nil, fmt.Errorf("jikan: season page %d: %w", page, err)
		}

		for _, item := range payload.Data {
			entries = append(entries, item.entry())
		}

		if !payload.Pagination.HasNextPage {
			break
		}
	}

	return entries, nil
}

func (c *Client) seasonRequest(page int) func(ctx context.Context) (*http.Request, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	endpoint := c.baseURL + "/seasons/now?" + query.Encode()

	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}
}
