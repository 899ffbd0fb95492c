// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns show titles into URL path segments, e.g.
// "Frieren: Beyond Journey's End" → "frieren-beyond-journeys-end".
//
// Latin accents are folded away. Letters of other scripts are kept as they
// are, so a native title such as "葬送のフリーレン" still yields a slug.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold decomposes (é → e + ◌́), drops Latin diacritics and recomposes what
// is left. Kana voicing marks survive the round trip.
var fold = transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isDiacritic)), norm.NFC)

// apostrophes are dropped rather than split on, so "Journey's" stays one word.
const apostrophes = "'’`"

// From converts a title into a lowercase, hyphen-separated slug.
func From(s string) string {
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
		case strings.ContainsRune(apostrophes, r):
		default:
			pendingHyphen = true
		}
	}
	return builder.String()
}

// isDiacritic reports whether r is in the Combining Diacritical Marks block.
func isDiacritic(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}
