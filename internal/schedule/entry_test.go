// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/schedule"
)

/*
TestTitles_Preferred walks each policy's fallback chain.
*/
func TestTitles_Preferred(t *testing.T) {
	full := schedule.Titles{Native: "葬送のフリーレン", Romaji: "Sousou no Frieren", English: "Frieren: Beyond Journey's End"}
	noEnglish := schedule.Titles{Native: "薬屋のひとりごと", Romaji: "Kusuriya no Hitorigoto", English: "  "}
	nativeOnly := schedule.Titles{Native: "ダンダダン"}

	tests := []struct {
		name   string
		titles schedule.Titles
		policy schedule.TitlePolicy
		want   string
	}{
		{"english_full", full, schedule.TitleEnglish, full.English},
		{"romaji_full", full, schedule.TitleRomaji, full.Romaji},
		{"native_full", full, schedule.TitleNative, full.Native},
		{"english_blank_falls_back", noEnglish, schedule.TitleEnglish, noEnglish.Romaji},
		{"native_only", nativeOnly, schedule.TitleRomaji, nativeOnly.Native},
		{"unknown_policy_is_english", full, schedule.TitlePolicy("klingon"), full.English},
		{"empty", schedule.Titles{}, schedule.TitleEnglish, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.titles.Preferred(tt.policy))
		})
	}
}

/*
TestParseTitlePolicy validates policy names.
*/
func TestParseTitlePolicy(t *testing.T) {
	policy, err := schedule.ParseTitlePolicy("")
	require.NoError(t, err)
	assert.Equal(t, schedule.TitleEnglish, policy)

	policy, err = schedule.ParseTitlePolicy(" Romaji ")
	require.NoError(t, err)
	assert.Equal(t, schedule.TitleRomaji, policy)

	_, err = schedule.ParseTitlePolicy("kanji")
	assert.Error(t, err)
}

/*
TestEntry_HasGenre matches genres case-insensitively.
*/
func TestEntry_HasGenre(t *testing.T) {
	entry := schedule.Entry{Genres: []string{"Action", "Slice of Life"}}

	assert.True(t, entry.HasGenre("action"))
	assert.True(t, entry.HasGenre("SLICE OF LIFE"))
	assert.False(t, entry.HasGenre("Drama"))
}
