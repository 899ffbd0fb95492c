// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// # Schedule Grouper

// DayBucket holds the entries sharing one broadcast day.
type DayBucket struct {
	Day     Day     `json:"day"`
	Entries []Entry `json:"entries"`
}

// Order is the intra-bucket sort key used by [GroupByDay].
//
// An Order builds a fresh comparator for every grouping call, so a single
// Order value may be shared between goroutines.
type Order struct {
	name    string
	compare func() func(a, b Entry) int
}

// String names the order, e.g. "title" or "airing".
func (o Order) String() string {
	if o.name == "" {
		return "id"
	}
	return o.name
}

func (o Order) comparator() func(a, b Entry) int {
	if o.compare == nil {
		return compareID
	}
	return o.compare()
}

// ByID sorts entries by identifier.
func ByID() Order {
	return Order{name: "id"}
}

// ByTitle sorts entries by display title using the collation rules of tag.
// Ties fall back to the identifier.
func ByTitle(tag language.Tag, policy TitlePolicy) Order {
	return Order{
		name: "title",
		compare: func() func(a, b Entry) int {
			// A Collator keeps internal buffers and must not be shared.
			collator := collate.New(tag)
			return func(a, b Entry) int {
				if c := collator.CompareString(a.Title(policy), b.Title(policy)); c != 0 {
					return c
				}
				return compareID(a, b)
			}
		},
	}
}

// ByAiringTime sorts weekly slots by source clock and instants by airing
// time, ascending. Entries without a usable time sort last.
func ByAiringTime() Order {
	return Order{
		name: "airing",
		compare: func() func(a, b Entry) int {
			return func(a, b Entry) int {
				ka, okA := a.Broadcast.minuteKey()
				kb, okB := b.Broadcast.minuteKey()
				switch {
				case okA && !okB:
					return -1
				case !okA && okB:
					return 1
				case okA && okB && ka != kb:
					return cmp.Compare(ka, kb)
				}
				return compareID(a, b)
			}
		},
	}
}

func compareID(a, b Entry) int {
	return cmp.Compare(a.ID, b.ID)
}

// GroupByDay partitions entries into day buckets.
//
// Buckets follow canonical order (Monday..Sunday, then Unknown) and empty
// buckets are omitted. Entries with no broadcast day land in Unknown. Each
// bucket is sorted by order. The input slice is left untouched.
func GroupByDay(entries []Entry, order Order) []DayBucket {
	members := make(map[Day][]Entry, len(dayNames))
	for _, entry := range entries {
		day := entry.Broadcast.Day()
		members[day] = append(members[day], entry)
	}

	compare := order.comparator()
	buckets := make([]DayBucket, 0, len(members))
	for _, day := range Days() {
		bucket := members[day]
		if len(bucket) == 0 {
			continue
		}
		slices.SortStableFunc(bucket, compare)
		buckets = append(buckets, DayBucket{Day: day, Entries: bucket})
	}

	return buckets
}
