// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anitoki/internal/platform/config"
)

/*
TestLoad_Defaults applies the documented defaults once the required
variables are present.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/anitoki")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, "https://api.jikan.moe/v4", cfg.Upstream.JikanBaseURL)
	assert.Equal(t, 4, cfg.Upstream.JikanMaxPages)
	assert.Equal(t, 168*time.Hour, cfg.Upstream.AiringWindow)
	assert.Equal(t, 3.0, cfg.Upstream.RequestsPerSec)
	assert.Equal(t, "en-US", cfg.Upstream.DisplayLocale)
}

/*
TestLoad_MissingRequired fails without the database URL.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "unused")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_SECRET", "s3cret")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoadUpstream needs no infrastructure variables and validates bounds.
*/
func TestLoadUpstream(t *testing.T) {
	t.Setenv("TITLE_PREFERENCE", "romaji")

	up, err := config.LoadUpstream()
	require.NoError(t, err)
	assert.Equal(t, "romaji", up.TitlePreference)

	t.Setenv("JIKAN_MAX_PAGES", "0")
	_, err = config.LoadUpstream()
	assert.Error(t, err)
}
