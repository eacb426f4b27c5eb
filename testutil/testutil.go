// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/gamevote/cliparse"
	"github.com/danielhkuo/gamevote/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. Every call gets its own file.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gamevote_test.db")
	conn, err := db.Open(cliparse.DatabaseSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:gamevote_test.db",
		DatabaseType: cliparse.DatabaseSQLite,
		LogLevel:     "debug",
	}
}

// CreateTestEntry inserts an entry with the given vote count and returns its ID
func CreateTestEntry(t *testing.T, db *sql.DB, name string, votes int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`
		INSERT INTO entry (name, description, developer, genre, release_date, cover_image, vote_count)
		VALUES ($1, 'A test game', 'Test Studio', 'Action', '2020-11-12', NULL, $2)
		RETURNING id
	`, name, votes).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}

	return id
}

// GetVoteCount reads the stored vote count of an entry
func GetVoteCount(t *testing.T, db *sql.DB, id int64) int64 {
	t.Helper()

	var votes int64
	if err := db.QueryRow(`SELECT vote_count FROM entry WHERE id = $1`, id).Scan(&votes); err != nil {
		t.Fatalf("Failed to read vote count for entry %d: %v", id, err)
	}

	return votes
}

// MakeFormRequest creates an HTTP test request with a form-encoded body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
