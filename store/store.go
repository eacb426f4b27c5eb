// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/gamevote/models"
)

var (
	ErrNotFound           = errors.New("entry not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidEntry       = errors.New("invalid entry")
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type EntryStore struct {
	db querier
	// conn is nil for a store bound to a transaction
	conn *sql.DB
}

func NewEntryStore(db *sql.DB) *EntryStore {
	return &EntryStore{db: db, conn: db}
}

// InTx runs fn with a store bound to a single transaction. If fn returns an
// error nothing it wrote is kept. Nested calls reuse the outer transaction.
func (s *EntryStore) InTx(ctx context.Context, fn func(tx *EntryStore) error) error {
	if s.conn == nil {
		return fn(s)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("failed to begin transaction", err)
	}

	if err := fn(&EntryStore{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return unavailable("failed to commit transaction", err)
	}
	return nil
}

// release_date is cast to text so both drivers hand back "YYYY-MM-DD"
const entryColumns = `id, name, description, developer, genre,
	CAST(release_date AS TEXT), cover_image, vote_count`

// ListByVotes returns every entry, most votes first. Ties are broken by id
// ascending.
func (s *EntryStore) ListByVotes(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entry
		ORDER BY vote_count DESC, id ASC
	`)
	if err != nil {
		return nil, unavailable("failed to query entries", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, unavailable("failed to scan entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("failed to iterate entries", err)
	}

	return entries, nil
}

// Get returns a single entry. No HTTP route reads one entry; fixtures and
// tests use it to check what Insert and IncrementVote stored.
func (s *EntryStore) Get(ctx context.Context, id int64) (models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM entry
		WHERE id = $1
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, ErrNotFound
	}
	if err != nil {
		return models.Entry{}, unavailable("failed to query entry", err)
	}
	return entry, nil
}

// IncrementVote adds exactly one vote to the entry and returns the stored
// count after the update. The increment happens inside a single UPDATE so
// concurrent votes on the same row are serialized by the database and none
// are lost. An unknown id returns ErrNotFound and changes nothing.
func (s *EntryStore) IncrementVote(ctx context.Context, id int64) (int64, error) {
	var votes int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE entry
		SET vote_count = vote_count + 1
		WHERE id = $1
		RETURNING vote_count
	`, id).Scan(&votes)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, unavailable("failed to increment vote", err)
	}

	return votes, nil
}

// Insert creates an entry and returns it with its assigned id. Entries are
// created out-of-band (seeding, tests); no HTTP route reaches this.
func (s *EntryStore) Insert(ctx context.Context, entry models.Entry) (models.Entry, error) {
	if entry.Name == "" {
		return models.Entry{}, fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	if entry.VoteCount < 0 {
		return models.Entry{}, fmt.Errorf("%w: vote count must not be negative", ErrInvalidEntry)
	}

	var releaseDate *string
	if entry.ReleaseDate != nil {
		d := entry.ReleaseDate.String()
		releaseDate = &d
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO entry (name, description, developer, genre, release_date, cover_image, vote_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, entry.Name, nullString(entry.Description), nullString(entry.Developer),
		nullString(entry.Genre), releaseDate, entry.CoverImage, entry.VoteCount,
	).Scan(&entry.ID)
	if err != nil {
		return models.Entry{}, unavailable("failed to insert entry", err)
	}

	return entry, nil
}

// Count returns the number of stored entries
func (s *EntryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entry`).Scan(&n); err != nil {
		return 0, unavailable("failed to count entries", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.Entry, error) {
	var entry models.Entry
	var description, developer, genre, releaseDate, coverImage sql.NullString

	err := row.Scan(
		&entry.ID, &entry.Name, &description, &developer, &genre,
		&releaseDate, &coverImage, &entry.VoteCount,
	)
	if err != nil {
		return models.Entry{}, err
	}

	entry.Description = description.String
	entry.Developer = developer.String
	entry.Genre = genre.String
	if coverImage.Valid {
		entry.CoverImage = &coverImage.String
	}
	if releaseDate.Valid && releaseDate.String != "" {
		d, err := models.ParseDate(releaseDate.String)
		if err != nil {
			return models.Entry{}, err
		}
		entry.ReleaseDate = &d
	}

	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// unavailable wraps a driver error so callers can match ErrStorageUnavailable
// while the driver error stays in the chain for logging
func unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorageUnavailable, err)
}
