// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package anilist fetches upcoming episode airings from the AniList GraphQL API.

Each airing schedule row becomes one [schedule.Entry] whose broadcast is an
absolute instant, so the same show appears once per episode in the window.
*/
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/internal/source"
)

// Name labels this upstream in logs, errors and cache keys.
const Name = "anilist"

const (
	// DefaultURL is the public GraphQL endpoint.
	DefaultURL = "https://graphql.anilist.co"
	// DefaultMaxPages bounds pagination of airingSchedules.
	DefaultMaxPages = 6

	perPage = 50
)

const airingQuery = `query ($page: Int, $perPage: Int, $from: Int, $to: Int) {
  Page(page: $page, perPage: $perPage) {
    pageInfo { hasNextPage currentPage }
    airingSchedules(airingAt_greater: $from, airingAt_lesser: $to, sort: TIME) {
      id
      airingAt
      episode
      media {
        id
        isAdult
        episodes
        genres
        siteUrl
        averageScore
        status
        title { romaji english native }
        coverImage { large }
      }
    }
  }
}`

// ErrGraphQL wraps errors reported in the GraphQL "errors" array.
var ErrGraphQL = errors.New("anilist: graphql error")

// Client reads Page.airingSchedules.
type Client struct {
	url       string
	maxPages  int
	requester *source.Requester
}

// NewClient returns a Client. Zero values select the defaults.
func NewClient(url string, maxPages int, requester *source.Requester) *Client {
	if url == "" {
		url = DefaultURL
	}
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	return &Client{url: url, maxPages: maxPages, requester: requester}
}

// Name returns the upstream label.
func (c *Client) Name() string { return Name }

// FetchAiring returns the episodes airing strictly between from and to,
// sorted by airing time. Adult media is skipped.
func (c *Client) FetchAiring(ctx context.Context, from, to time.Time) ([]schedule.Entry, error) {
	entries := make([]schedule.Entry, 0)

	for page := 1; page <= c.maxPages; page++ {
		body, err := json.Marshal(graphQLRequest{
			Query: airingQuery,
			Variables: variables{
				Page:    page,
				PerPage: perPage,
				From:    from.Unix(),
				To:      to.Unix(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("anilist: encode query: %w", err)
		}

		var payload airingResponse
		if err := c.requester.DoJSON(ctx, c.post(body), &payload); err != nil {
			return nil, fmt.Errorf("anilist: airing page %d: %w", page, err)
		}
		if len(payload.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrGraphQL, payload.Errors.message())
		}

		for _, row := range payload.Data.Page.AiringSchedules {
			if row.Media.IsAdult {
				continue
			}
			entries = append(entries, row.entry())
		}

		if !payload.Data.Page.PageInfo.HasNextPage {
			break
		}
	}

	return entries, nil
}

func (c *Client) post(body []byte) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", "application/json")
		return request, nil
	}
}

func (e graphQLErrors) message() string {
	messages := make([]string, 0, len(e))
	for _, item := range e {
		messages = append(messages, item.Message)
	}
	return strings.Join(messages, "; ")
}
