// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule

// # Deduplicator

// DedupeBy keeps the first item for each distinct key, preserving the order
// in which keys were first seen. It never fails; nil or empty input yields
// an empty slice.
func DedupeBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	unique := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// Dedupe collapses entries sharing an ID into their first occurrence.
func Dedupe(entries []Entry) []Entry {
	return DedupeBy(entries, func(e Entry) int { return e.ID })
}
