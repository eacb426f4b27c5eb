// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the gamevote API server.

gamevote is a small voting widget: a catalogue of games, each with a running
vote count. Visitors see the list ordered by votes and cast one vote at a
time; the ranking refreshes after every vote.

# Starting the Server

The server reads CLI flags, then environment variables, then a .env file:

	DATABASE_URL=gamevote.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -seed games.json

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - SEED_FILE (-seed): JSON array of games inserted when the table is empty
  - LOG_LEVEL (-log-level): debug, info (default), warn or error

# Endpoints

  - GET  /api/entries: every game, most votes first
  - POST /api/vote: form field id, adds one vote
  - GET  /health: liveness probe

# Architecture

  - handlers: HTTP request handlers (entries, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - store: Entry queries and the atomic vote increment
  - models: Entry and response types
  - db: Connection, schema and seeding
  - cliparse: Configuration and logger setup
  - client, syncctl, textview: the terminal client in cmd/gamevote-client

See package documentation for each component.
*/
package main
