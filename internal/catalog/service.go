// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog serves the season and airing schedules.

Upstream feeds are cached as snapshots (cache-aside), run through the
schedule engine and rendered for one observer per request. A background
[Refresher] keeps the snapshots warm.
*/
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/anitoki/internal/platform/apperr"
	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/pkg/clock"
	"github.com/taibuivan/anitoki/pkg/pagination"
)

// Service builds schedule views from cached upstream snapshots.
type Service struct {
	season Source
	airing Source
	cache  Cache
	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger
}

// Options configures a [Service]. Season and Airing are required.
type Options struct {
	Season Source
	Airing Source

	// Cache defaults to no caching.
	Cache Cache
	TTL   time.Duration

	// Clock defaults to the system clock.
	Clock  clock.Clock
	Logger *slog.Logger
}

// NewService returns a Service.
func NewService(opts Options) *Service {
	service := &Service{
		season: opts.Season,
		airing: opts.Airing,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	if service.cache == nil {
		service.cache = noCache{}
	}
	if service.clock == nil {
		service.clock = clock.System{}
	}
	if service.logger == nil {
		service.logger = slog.Default()
	}
	return service
}

// # Snapshots

// Season returns the current season snapshot, fetching it on a cache miss.
func (service *Service) Season(context context.Context) (*Snapshot, error) {
	return service.load(context, service.season)
}

// Airing returns the airing schedule snapshot, fetching it on a cache miss.
func (service *Service) Airing(context context.Context) (*Snapshot, error) {
	return service.load(context, service.airing)
}

// Refresh fetches every source concurrently and overwrites the cache.
// Each source is attempted even when the other fails; the first failure
// is returned.
func (service *Service) Refresh(context context.Context) (map[string]int, error) {
	sources := []Source{service.season, service.airing}
	counts := make([]int, len(sources))

	var group errgroup.Group
	for i, src := range sources {
		group.Go(func() error {
			snapshot, err := service.fetch(context, src)
			if err != nil {
				return err
			}
			counts[i] = len(snapshot.Entries)
			return nil
		})
	}
	err := group.Wait()

	result := make(map[string]int, len(sources))
	for i, src := range sources {
		result[src.Name()] = counts[i]
	}
	return result, err
}

func (service *Service) load(context context.Context, src Source) (*Snapshot, error) {
	snapshot, err := service.cache.Get(context, src.Name())
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		service.logger.WarnContext(context, "catalog_cache_read_failed",
			slog.String("source", src.Name()),
			slog.Any("error", err),
		)
	}
	return service.fetch(context, src)
}

func (service *Service) fetch(context context.Context, src Source) (*Snapshot, error) {
	entries, err := src.Fetch(context)
	if err != nil {
		service.logger.ErrorContext(context, "catalog_fetch_failed",
			slog.String("source", src.Name()),
			slog.Any("error", err),
		)
		return nil, apperr.Upstream(src.Name(), err)
	}

	snapshot := &Snapshot{
		Source:    src.Name(),
		Entries:   entries,
		FetchedAt: service.clock.Now().UTC(),
	}

	if err := service.cache.Set(context, snapshot, service.ttl); err != nil {
		service.logger.WarnContext(context, "catalog_cache_write_failed",
			slog.String("source", src.Name()),
			slog.Any("error", err),
		)
	}
	return snapshot, nil
}

// # Views

func (service *Service) reference(view View) time.Time {
	if !view.At.IsZero() {
		return view.At
	}
	return service.clock.Now()
}

// seasonEntries returns the deduplicated, genre-filtered season.
func (service *Service) seasonEntries(context context.Context, view View) ([]schedule.Entry, error) {
	snapshot, err := service.Season(context)
	if err != nil {
		return nil, err
	}
	return schedule.FilterGenres(schedule.Dedupe(snapshot.Entries), view.Genres), nil
}

// Dashboard renders the full season overview.
func (service *Service) Dashboard(context context.Context, view View) (*Dashboard, error) {
	entries, err := service.seasonEntries(context, view)
	if err != nil {
		return nil, err
	}

	ref := service.reference(view)
	render := newRenderer(view, ref)

	return &Dashboard{
		Total:       len(entries),
		Today:       service.today(render, entries, ref),
		Gallery:     render.items(entries),
		Weekly:      render.buckets(schedule.GroupByDay(entries, schedule.ByTitle(view.Locale.Tag(), view.Titles))),
		GeneratedAt: ref.UTC(),
		Timezone:    view.timezone(),
		Locale:      view.Locale.String(),
	}, nil
}

// Today renders the season entries airing on the observer's weekday.
func (service *Service) Today(context context.Context, view View) (*TodayView, error) {
	entries, err := service.seasonEntries(context, view)
	if err != nil {
		return nil, err
	}

	ref := service.reference(view)
	today := service.today(newRenderer(view, ref), entries, ref)
	return &today, nil
}

func (service *Service) today(render renderer, entries []schedule.Entry, ref time.Time) TodayView {
	localizer := render.localizer
	return TodayView{
		Day:     render.view.Locale.Weekday(ref.In(locationOf(localizer)).Weekday()),
		Entries: render.items(schedule.Today(entries, localizer, ref)),
	}
}

// Weekly renders the season grouped by source broadcast day, sorted by
// display title.
func (service *Service) Weekly(context context.Context, view View) ([]Bucket, error) {
	entries, err := service.seasonEntries(context, view)
	if err != nil {
		return nil, err
	}

	render := newRenderer(view, service.reference(view))
	return render.buckets(schedule.GroupByDay(entries, schedule.ByTitle(view.Locale.Tag(), view.Titles))), nil
}

// Gallery renders one page of the deduplicated season.
func (service *Service) Gallery(context context.Context, view View, page pagination.Params) (*GalleryPage, error) {
	entries, err := service.seasonEntries(context, view)
	if err != nil {
		return nil, err
	}

	page = page.Normalize()

	total := len(entries)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)

	render := newRenderer(view, service.reference(view))
	return &GalleryPage{
		Items: render.items(entries[start:end]),
		Meta:  pagination.NewMeta(page.Page, page.Limit, total),
	}, nil
}

// AiringBoard renders upcoming episodes grouped by source broadcast day in
// airing order.
func (service *Service) AiringBoard(context context.Context, view View) (*AiringBoard, error) {
	snapshot, err := service.Airing(context)
	if err != nil {
		return nil, err
	}

	entries := schedule.FilterGenres(schedule.Dedupe(snapshot.Entries), view.Genres)
	ref := service.reference(view)
	render := newRenderer(view, ref)

	return &AiringBoard{
		Total:       len(entries),
		Days:        render.buckets(schedule.GroupByDay(entries, schedule.ByAiringTime())),
		GeneratedAt: ref.UTC(),
		Timezone:    view.timezone(),
		Locale:      view.Locale.String(),
	}, nil
}

func locationOf(localizer schedule.Localizer) *time.Location {
	if localizer.Location == nil {
		return time.UTC
	}
	return localizer.Location
}
