// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/anitoki/internal/platform/config"
	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/internal/source"
	"github.com/taibuivan/anitoki/internal/source/anilist"
	"github.com/taibuivan/anitoki/internal/source/jikan"
	"github.com/taibuivan/anitoki/pkg/clock"
)

// Source is one upstream that yields schedule entries.
type Source interface {
	Name() string
	Fetch(context context.Context) ([]schedule.Entry, error)
}

// # Adapters

type seasonSource struct {
	client *jikan.Client
}

// SeasonSource adapts the Jikan season feed.
func SeasonSource(client *jikan.Client) Source {
	return seasonSource{client: client}
}

func (s seasonSource) Name() string { return s.client.Name() }

func (s seasonSource) Fetch(context context.Context) ([]schedule.Entry, error) {
	return s.client.FetchSeason(context)
}

type airingSource struct {
	client *anilist.Client
	window time.Duration
	clock  clock.Clock
}

// AiringSource adapts the AniList airing schedule to a rolling window that
// starts at the clock's current instant.
func AiringSource(client *anilist.Client, window time.Duration, clk clock.Clock) Source {
	return airingSource{client: client, window: window, clock: clk}
}

func (s airingSource) Name() string { return s.client.Name() }

func (s airingSource) Fetch(context context.Context) ([]schedule.Entry, error) {
	from := s.clock.Now()
	return s.client.FetchAiring(context, from, from.Add(s.window))
}

// # Wiring

// UpstreamSources builds the season and airing sources from configuration.
// Each host is paced by its own limiter.
func UpstreamSources(up *config.Upstream, clk clock.Clock, logger *slog.Logger) (season, airing Source) {
	httpClient := &http.Client{Timeout: up.Timeout}

	requester := func(name string) *source.Requester {
		return source.NewRequester(source.Options{
			Name:       name,
			HTTPClient: httpClient,
			Limiter:    source.NewLimiter(up.RequestsPerSec),
			Logger:     logger,
		})
	}

	season = SeasonSource(jikan.NewClient(up.JikanBaseURL, up.JikanMaxPages, requester(jikan.Name)))
	airing = AiringSource(anilist.NewClient(up.AniListURL, up.AniListMaxPages, requester(anilist.Name)), up.AiringWindow, clk)
	return season, airing
}

// DefaultsFrom resolves the configured locale and title policy. Views are
// rendered in loc unless a request names a timezone.
func DefaultsFrom(up *config.Upstream, loc *time.Location) (Defaults, error) {
	locale, err := schedule.ResolveLocale(up.DisplayLocale)
	if err != nil {
		return Defaults{}, err
	}
	titles, err := schedule.ParseTitlePolicy(up.TitlePreference)
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{Location: loc, Locale: locale, Titles: titles}, nil
}
