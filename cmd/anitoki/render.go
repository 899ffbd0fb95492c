// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/anitoki/internal/catalog"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AD76E7"))
	dayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EB9B19"))
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FC942"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#797979"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Align(lipgloss.Left)
)

const emptyDay = "nothing scheduled"

func renderWeekly(w io.Writer, view catalog.View, buckets []catalog.Bucket) {
	fmt.Fprintln(w, headingStyle.Render("Season schedule · "+zoneOf(view)))
	for _, bucket := range buckets {
		fmt.Fprintln(w)
		fmt.Fprintln(w, dayStyle.Render(bucket.Label))
		writeItems(w, bucket.Entries, slot)
	}
}

func renderToday(w io.Writer, view catalog.View, today *catalog.TodayView) {
	fmt.Fprintln(w, headingStyle.Render("Today · "+today.Day+" · "+zoneOf(view)))
	writeItems(w, today.Entries, clockOnly)
}

func renderGallery(w io.Writer, gallery *catalog.GalleryPage) {
	meta := gallery.Meta
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Season gallery · page %d of %d · %d shows",
		meta.Page, max(meta.TotalPages, 1), meta.Total)))
	writeItems(w, gallery.Items, slot)
}

func renderAiring(w io.Writer, board *catalog.AiringBoard) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Airing · %d episodes · %s", board.Total, board.Timezone)))
	for _, day := range board.Days {
		fmt.Fprintln(w)
		fmt.Fprintln(w, dayStyle.Render(day.Label))
		writeItems(w, day.Entries, clockOnly)
	}
}

// writeItems prints one aligned line per item: time, title, details.
func writeItems(w io.Writer, items []catalog.Item, timeOf func(catalog.Item) string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  "+mutedStyle.Render(emptyDay))
		return
	}

	timeWidth, titleWidth := 0, 0
	for _, item := range items {
		timeWidth = max(timeWidth, lipgloss.Width(timeOf(item)))
		titleWidth = max(titleWidth, lipgloss.Width(item.Title))
	}
	timeColumn := timeStyle.Width(timeWidth + 1)
	titleColumn := titleStyle.Width(titleWidth + 1)

	for _, item := range items {
		line := "  " + timeColumn.Render(timeOf(item)) + " " + titleColumn.Render(item.Title)
		if details := detailsOf(item); details != "" {
			line += " " + mutedStyle.Render(details)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// slot is the local weekday and clock, for views spanning the week.
func slot(item catalog.Item) string {
	if item.Localized == nil {
		return catalog.TimeNotAvailable
	}
	return item.Localized.LocalWeekday + " " + item.Localized.LocalClock
}

func clockOnly(item catalog.Item) string {
	if item.Localized == nil {
		return catalog.TimeNotAvailable
	}
	return item.Localized.LocalClock
}

func detailsOf(item catalog.Item) string {
	var parts []string
	switch {
	case item.Episode != nil:
		parts = append(parts, "ep "+strconv.Itoa(*item.Episode))
	case item.Episodes != nil:
		parts = append(parts, strconv.Itoa(*item.Episodes)+" eps")
	}
	if item.Score != nil {
		parts = append(parts, "★ "+strconv.FormatFloat(*item.Score, 'f', 1, 64))
	}
	if len(item.Genres) > 0 {
		parts = append(parts, strings.Join(item.Genres, ", "))
	}
	return strings.Join(parts, " · ")
}

func zoneOf(view catalog.View) string {
	if view.Location == nil {
		return "UTC"
	}
	return view.Location.String()
}
