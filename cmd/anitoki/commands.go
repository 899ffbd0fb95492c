// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taibuivan/anitoki/internal/catalog"
	"github.com/taibuivan/anitoki/internal/platform/config"
	"github.com/taibuivan/anitoki/internal/platform/constants"
	"github.com/taibuivan/anitoki/pkg/clock"
	"github.com/taibuivan/anitoki/pkg/pagination"
	"github.com/taibuivan/anitoki/pkg/query"
)

// options holds the persistent flags.
type options struct {
	tz         string
	locale     string
	title      string
	genres     string
	at         string
	jikanURL   string
	anilistURL string
	maxPages   int
	debug      bool
}

// session is what every subcommand runs against, built once per invocation.
type session struct {
	service *catalog.Service
	view    catalog.View
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	current := &session{}

	root := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Anime broadcast schedule in your timezone",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			built, err := opts.session(stderr)
			if err != nil {
				return err
			}
			*current = *built
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.tz, "tz", "", "IANA timezone to show times in (default: local)")
	flags.StringVar(&opts.locale, "locale", "", "display locale, e.g. en-GB or ja-JP (default: $DISPLAY_LOCALE)")
	flags.StringVar(&opts.title, "title", "", "title preference: english, romaji or native (default: $TITLE_PREFERENCE)")
	flags.StringVar(&opts.genres, "genres", "", "comma-separated genres to keep")
	flags.StringVar(&opts.at, "at", "", "RFC 3339 instant to render the schedule for (default: now)")
	flags.StringVar(&opts.jikanURL, "jikan-url", "", "Jikan API base URL (default: $JIKAN_BASE_URL)")
	flags.StringVar(&opts.anilistURL, "anilist-url", "", "AniList GraphQL URL (default: $ANILIST_URL)")
	flags.IntVar(&opts.maxPages, "max-pages", 0, "page cap for both sources (default: per-source config)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		weeklyCommand(current, stdout),
		todayCommand(current, stdout),
		galleryCommand(current, stdout),
		airingCommand(current, stdout),
	)
	return root
}

// session loads configuration, applies flag overrides and wires the
// catalog service without a cache.
func (opts *options) session(stderr io.Writer) (*session, error) {
	handler := log.NewWithOptions(stderr, log.Options{
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	})
	if opts.debug {
		handler.SetLevel(log.DebugLevel)
	}
	logger := slog.New(handler)

	up, err := config.LoadUpstream()
	if err != nil {
		return nil, err
	}
	if opts.jikanURL != "" {
		up.JikanBaseURL = opts.jikanURL
	}
	if opts.anilistURL != "" {
		up.AniListURL = opts.anilistURL
	}
	if opts.maxPages > 0 {
		up.JikanMaxPages = opts.maxPages
		up.AniListMaxPages = opts.maxPages
	}
	if opts.locale != "" {
		up.DisplayLocale = opts.locale
	}
	if opts.title != "" {
		up.TitlePreference = opts.title
	}

	location := time.Local
	if opts.tz != "" {
		if location, err = time.LoadLocation(opts.tz); err != nil {
			return nil, fmt.Errorf("invalid --tz %q: %w", opts.tz, err)
		}
	}

	defaults, err := catalog.DefaultsFrom(up, location)
	if err != nil {
		return nil, err
	}

	view := catalog.View{
		Location: defaults.Location,
		Locale:   defaults.Locale,
		Titles:   defaults.Titles,
		Genres:   query.StringSlice(opts.genres),
	}
	if opts.at != "" {
		if view.At, err = time.Parse(time.RFC3339, opts.at); err != nil {
			return nil, fmt.Errorf("invalid --at %q: %w", opts.at, err)
		}
	}

	systemClock := clock.System{}
	season, airing := catalog.UpstreamSources(up, systemClock, logger)

	logger.Debug("cli_session_ready",
		slog.String("timezone", location.String()),
		slog.String("locale", view.Locale.String()),
		slog.String("titles", string(view.Titles)),
	)

	return &session{
		service: catalog.NewService(catalog.Options{Season: season, Airing: airing, Clock: systemClock, Logger: logger}),
		view:    view,
	}, nil
}

// # Subcommands

func weeklyCommand(current *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Season schedule grouped by broadcast day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buckets, err := current.service.Weekly(cmd.Context(), current.view)
			if err != nil {
				return err
			}
			renderWeekly(stdout, current.view, buckets)
			return nil
		},
	}
}

func todayCommand(current *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Shows airing on your current weekday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := current.service.Today(cmd.Context(), current.view)
			if err != nil {
				return err
			}
			renderToday(stdout, current.view, today)
			return nil
		},
	}
}

func galleryCommand(current *session, stdout io.Writer) *cobra.Command {
	page := pagination.Params{}

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Every show of the season, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gallery, err := current.service.Gallery(cmd.Context(), current.view, page)
			if err != nil {
				return err
			}
			renderGallery(stdout, gallery)
			return nil
		},
	}

	cmd.Flags().IntVar(&page.Page, "page", pagination.DefaultPage, "page number")
	cmd.Flags().IntVar(&page.Limit, "limit", pagination.DefaultLimit, "shows per page")
	return cmd
}

func airingCommand(current *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "airing",
		Short: "Upcoming episodes by day, in airing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := current.service.AiringBoard(cmd.Context(), current.view)
			if err != nil {
				return err
			}
			renderAiring(stdout, board)
			return nil
		},
	}
}
