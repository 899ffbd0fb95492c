// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The terminal client has no database or cache and only needs the upstream
and display settings:

	up, err := config.LoadUpstream()

Once loaded, configuration is read-only and passed to constructors.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the AniToki API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL), holds theme preferences.
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), holds catalog snapshots and theme events.
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret is the root secret the visitor-cookie signing key is
	// derived from.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Catalog cache and background refresh
	CatalogTTL      time.Duration `env:"CATALOG_TTL"      envDefault:"30m"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"1h"`

	Upstream Upstream
}

// Upstream holds the settings shared by the API server and the CLI: where
// schedules come from and how they are displayed.
type Upstream struct {
	JikanBaseURL    string        `env:"JIKAN_BASE_URL"    envDefault:"https://api.jikan.moe/v4"`
	JikanMaxPages   int           `env:"JIKAN_MAX_PAGES"   envDefault:"4"`
	AniListURL      string        `env:"ANILIST_URL"       envDefault:"https://graphql.anilist.co"`
	AniListMaxPages int           `env:"ANILIST_MAX_PAGES" envDefault:"6"`
	AiringWindow    time.Duration `env:"AIRING_WINDOW"     envDefault:"168h"`
	Timeout         time.Duration `env:"UPSTREAM_TIMEOUT"  envDefault:"15s"`
	RequestsPerSec  float64       `env:"UPSTREAM_RPS"      envDefault:"3"`

	// DisplayLocale is the BCP 47 locale used when a request names none.
	DisplayLocale string `env:"DISPLAY_LOCALE"   envDefault:"en-US"`
	// TitlePreference is one of english, romaji, native.
	TitlePreference string `env:"TITLE_PREFERENCE" envDefault:"english"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadUpstream parses only the [Upstream] block. No variable is required.
func LoadUpstream() (*Upstream, error) {
	up := &Upstream{}
	if err := env.Parse(up); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := up.validate(); err != nil {
		return nil, err
	}
	return up, nil
}

func (u *Upstream) validate() error {
	if u.JikanMaxPages < 1 || u.AniListMaxPages < 1 {
		return fmt.Errorf("config: max pages must be at least 1")
	}
	if u.RequestsPerSec <= 0 {
		return fmt.Errorf("config: UPSTREAM_RPS must be positive")
	}
	if u.AiringWindow <= 0 {
		return fmt.Errorf("config: AIRING_WINDOW must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
