// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jikan_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/internal/source"
	"github.com/taibuivan/anitoki/internal/source/jikan"
)

const pageOne = `{
  "pagination": {"last_visible_page": 2, "has_next_page": true},
  "data": [
    {
      "mal_id": 52991,
      "url": "https://myanimelist.net/anime/52991",
      "images": {
        "jpg":  {"image_url": "https://cdn/52991.jpg", "large_image_url": "https://cdn/52991l.jpg"},
        "webp": {"image_url": "https://cdn/52991.webp", "large_image_url": "https://cdn/52991l.webp"}
      },
      "title": "Sousou no Frieren",
      "title_english": "Frieren: Beyond Journey's End",
      "title_japanese": "葬送のフリーレン",
      "episodes": 28,
      "status": "Currently Airing",
      "score": 9.3,
      "broadcast": {"day": "Fridays", "time": "23:00", "timezone": "Asia/Tokyo", "string": "Fridays at 23:00 (JST)"},
      "genres": [{"name": "Adventure"}, {"name": "Fantasy"}]
    }
  ]
}`

const pageTwo = `{
  "pagination": {"last_visible_page": 2, "has_next_page": false},
  "data": [
    {
      "mal_id": 5114,
      "url": "https://myanimelist.net/anime/5114",
      "images": {"jpg": {"image_url": "https://cdn/5114.jpg"}, "webp": {}},
      "title": "Hagane no Renkinjutsushi",
      "title_english": null,
      "title_japanese": null,
      "episodes": null,
      "status": "Currently Airing",
      "score": null,
      "broadcast": {"day": null, "time": null, "timezone": null, "string": "Unknown"},
      "genres": []
    }
  ]
}`

func newClient(baseURL string, maxPages int) *jikan.Client {
	requester := source.NewRequester(source.Options{
		Name:      jikan.Name,
		Attempts:  2,
		BaseDelay: time.Millisecond,
		MaxDelay:  time.Millisecond,
	})
	return jikan.NewClient(baseURL, maxPages, requester)
}

/*
TestFetchSeason follows pagination and maps both complete and sparse payloads.
*/
func TestFetchSeason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/seasons/now", request.URL.Path)
		switch request.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(writer, pageOne)
		case "2":
			fmt.Fprint(writer, pageTwo)
		default:
			t.Errorf("unexpected page %q", request.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	entries, err := newClient(server.URL, 4).FetchSeason(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	frieren := entries[0]
	assert.Equal(t, 52991, frieren.ID)
	assert.Equal(t, 52991, frieren.MediaID)
	assert.Equal(t, "Frieren: Beyond Journey's End", frieren.Title(schedule.TitleEnglish))
	assert.Equal(t, "葬送のフリーレン", frieren.Title(schedule.TitleNative))
	assert.Equal(t, schedule.Friday, frieren.Broadcast.Day())
	assert.Equal(t, "23:00", frieren.Broadcast.Clock())
	assert.Equal(t, "https://cdn/52991l.webp", frieren.ImageURL)
	assert.Equal(t, []string{"Adventure", "Fantasy"}, frieren.Genres)
	require.NotNil(t, frieren.Episodes)
	assert.Equal(t, 28, *frieren.Episodes)

	fma := entries[1]
	assert.Equal(t, "Hagane no Renkinjutsushi", fma.Title(schedule.TitleEnglish))
	assert.Equal(t, schedule.DayUnknown, fma.Broadcast.Day())
	assert.False(t, fma.Broadcast.Complete())
	assert.Nil(t, fma.Episodes)
	assert.Nil(t, fma.Score)
	assert.Equal(t, "https://cdn/5114.jpg", fma.ImageURL)
}

/*
TestFetchSeason_MaxPages stops paging at the configured bound even when the
upstream reports more.
*/
func TestFetchSeason_MaxPages(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		fmt.Fprint(writer, pageOne)
	}))
	defer server.Close()

	entries, err := newClient(server.URL, 2).FetchSeason(context.Background())
	require.NoError(t, err)

	assert.Len(t, entries, 2)
	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, schedule.Dedupe(entries), 1)
}

/*
TestFetchSeason_Failure surfaces the status of a failed page.
*/
func TestFetchSeason_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newClient(server.URL, 1).FetchSeason(context.Background())

	var statusErr *source.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.ErrorContains(t, err, "season page 1")
}
