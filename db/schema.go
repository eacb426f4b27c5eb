// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/gamevote/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	schema, err := schemaFor(dbType)
	if err != nil {
		return err
	}

	_, err = db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func schemaFor(dbType string) (string, error) {
	switch dbType {
	case cliparse.DatabasePostgres:
		return postgresSchema, nil
	case cliparse.DatabaseSQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("no schema for database type %q", dbType)
	}
}

const postgresSchema = `
-- Entries
CREATE TABLE IF NOT EXISTS entry (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    developer TEXT,
    genre TEXT,
    release_date DATE,
    cover_image TEXT,
    vote_count BIGINT NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_entry_vote_count ON entry(vote_count DESC, id);
`

const sqliteSchema = `
-- Entries
CREATE TABLE IF NOT EXISTS entry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    developer TEXT,
    genre TEXT,
    release_date DATE,
    cover_image TEXT,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_entry_vote_count ON entry(vote_count DESC, id);
`
