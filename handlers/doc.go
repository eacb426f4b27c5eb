// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the gamevote API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - EntriesHandler: the game list, most votes first
  - VotingHandler: one vote per request

Handlers are created via constructor functions that accept *sql.DB and Config:

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Listing

	GET /api/entries → ListEntries

Responds {"success": true, "data": [...], "total": n}. Entries with equal
vote counts are ordered by id ascending.

# Voting

	POST /api/vote (form field id) → Vote

The id is validated before storage is touched. Outcomes:

  - 200 {"success": true, "message", "votos", "juego_id"}
  - 400 invalid or missing id (ErrInvalidInput)
  - 404 unknown id, nothing changed
  - 500 storage failure

votos is the count read back from the database after the increment, so
concurrent voters always see an authoritative value.

# Errors

Error bodies carry fixed public messages. The underlying error is logged
with slog and never written to the response.
*/
package handlers
