// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination pages the season gallery.
//
// Pages are 1-indexed. Requests that ask for nothing get [DefaultLimit]
// items; requests that ask for too much get [MaxLimit].
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit fills four rows of the six-column gallery grid.
	DefaultLimit = 24
	// MaxLimit bounds one page.
	MaxLimit = 96
	// DefaultPage is the first page.
	DefaultPage = 1
)

// Params holds a requested page and page size.
type Params struct {
	Page  int
	Limit int
}

// Normalize returns p with a page of at least one and a limit within
// [1, MaxLimit]. A missing limit becomes [DefaultLimit].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the index of the first item of the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block of a gallery response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta describes page of a list holding total items.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest reads the "page" and "limit" query parameters. Values that do
// not parse are treated as missing.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Params{
		Page:  intParam(query.Get("page")),
		Limit: intParam(query.Get("limit")),
	}.Normalize()
}

func intParam(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
