// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/anitoki/internal/platform/database/schema"
	"github.com/taibuivan/anitoki/internal/platform/dberr"
)

// PostgresStore implements [Store] on users.themepreference.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed preference store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Read loads the preference of a visitor.

Returns:
  - Record: The stored preference, or the zero Record if none exists
  - error: Database execution failure
*/
func (store *PostgresStore) Read(context context.Context, visitorID string) (Record, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.ThemePreference.Explicit, schema.ThemePreference.SystemDark, schema.ThemePreference.UpdatedAt,
		schema.ThemePreference.Table,
		schema.ThemePreference.VisitorID,
	)

	var (
		record   Record
		explicit *string
	)
	err := store.pool.QueryRow(context, query, visitorID).Scan(&explicit, &record.SystemDark, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, nil
		}
		return Record{}, dberr.Wrap(err, "read_theme_preference")
	}

	if explicit != nil {
		theme, err := ParseTheme(*explicit)
		if err != nil {
			return Record{}, dberr.Wrap(err, "read_theme_preference")
		}
		record.Explicit = &theme
	}
	return record, nil
}

// Write upserts the preference of a visitor.
func (store *PostgresStore) Write(context context.Context, visitorID string, record Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.ThemePreference.Table,
		schema.ThemePreference.VisitorID, schema.ThemePreference.Explicit,
		schema.ThemePreference.SystemDark, schema.ThemePreference.UpdatedAt,
		schema.ThemePreference.VisitorID,
		schema.ThemePreference.Explicit, schema.ThemePreference.Explicit,
		schema.ThemePreference.SystemDark, schema.ThemePreference.SystemDark,
		schema.ThemePreference.UpdatedAt, schema.ThemePreference.UpdatedAt,
	)

	var explicit *string
	if record.Explicit != nil {
		value := string(*record.Explicit)
		explicit = &value
	}

	if _, err := store.pool.Exec(context, query, visitorID, explicit, record.SystemDark, record.UpdatedAt); err != nil {
		return dberr.Wrap(err, "write_theme_preference")
	}
	return nil
}
