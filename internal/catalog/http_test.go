// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/catalog"
	"github.com/taibuivan/anitoki/internal/schedule"
)

type fakeControl struct {
	running   bool
	triggered int
}

func (c *fakeControl) Refresh() bool {
	c.triggered++
	return c.running
}

func (c *fakeControl) Status() catalog.Status {
	return catalog.Status{Running: c.running, State: catalog.StateIdle}
}

func newRouter(f *fixture, control *fakeControl) http.Handler {
	handler := catalog.NewHandler(f.service, control, catalog.Defaults{
		Location: time.UTC,
		Locale:   schedule.LocaleEnUS,
		Titles:   schedule.TitleEnglish,
	})
	return handler.Routes()
}

func serve(t *testing.T, router http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

type envelope[T any] struct {
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_Dashboard renders the season for the requested zone and instant.
*/
func TestHandler_Dashboard(t *testing.T) {
	router := newRouter(newFixture(), &fakeControl{running: true})

	recorder := serve(t, router, http.MethodGet, "/season/?tz=Asia/Tokyo&at=2026-01-05T12:00:00Z&locale=ja-JP")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decode[catalog.Dashboard](t, recorder)
	assert.Equal(t, 4, body.Data.Total)
	assert.Equal(t, "Asia/Tokyo", body.Data.Timezone)
	assert.Equal(t, "ja-JP", body.Data.Locale)
	assert.Equal(t, "月曜日", body.Data.Today.Day)
}

/*
TestHandler_AcceptLanguage picks the display locale from the header when no
locale parameter is given.
*/
func TestHandler_AcceptLanguage(t *testing.T) {
	router := newRouter(newFixture(), &fakeControl{running: true})

	recorder := serve(t, router, http.MethodGet, "/season/today", "Accept-Language", "en-GB,en;q=0.8")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decode[catalog.TodayView](t, recorder)
	assert.Equal(t, "Monday", body.Data.Day)
}

/*
TestHandler_InvalidQuery reports every bad parameter at once.
*/
func TestHandler_InvalidQuery(t *testing.T) {
	router := newRouter(newFixture(), &fakeControl{running: true})

	recorder := serve(t, router, http.MethodGet, "/season/weekly?tz=Mars/Olympus&title=klingon&at=yesterday&locale=not_a_tag!")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decode[json.RawMessage](t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	fields := make([]string, 0, len(body.Details))
	for _, detail := range body.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"tz", "at", "locale", "title"}, fields)
}

/*
TestHandler_Gallery returns the page with pagination metadata.
*/
func TestHandler_Gallery(t *testing.T) {
	router := newRouter(newFixture(), &fakeControl{running: true})

	recorder := serve(t, router, http.MethodGet, "/season/gallery?page=2&limit=3&genres=")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Data []catalog.Item `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []int{4}, itemIDs(body.Data))
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 2, body.Meta.TotalPages)
	assert.Nil(t, body.Data[0].Localized)
}

/*
TestHandler_UpstreamFailure answers 502.
*/
func TestHandler_UpstreamFailure(t *testing.T) {
	f := newFixture()
	f.airing.err = errors.New("dial tcp: i/o timeout")
	router := newRouter(f, &fakeControl{running: true})

	recorder := serve(t, router, http.MethodGet, "/airing")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decode[json.RawMessage](t, recorder).Code)
	assert.NotContains(t, recorder.Body.String(), "i/o timeout")
}

/*
TestHandler_Refresh queues a refresh only while the refresher runs.
*/
func TestHandler_Refresh(t *testing.T) {
	tests := []struct {
		name    string
		running bool
		status  int
	}{
		{"running", true, http.StatusAccepted},
		{"stopped", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			control := &fakeControl{running: tt.running}
			router := newRouter(newFixture(), control)

			recorder := serve(t, router, http.MethodPost, "/catalog/refresh")

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, 1, control.triggered)
		})
	}

	recorder := serve(t, newRouter(newFixture(), &fakeControl{running: true}), http.MethodGet, "/catalog/status")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, decode[catalog.Status](t, recorder).Data.Running)
}
