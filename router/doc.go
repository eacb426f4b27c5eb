// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the gamevote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Entries:

	GET  /api/entries - All entries, most votes first
	POST /api/vote    - Add one vote (form field id)

Any other method on those paths gets 405 with an Allow header.

# Handler Initialization

	entriesHandler := handlers.NewEntriesHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)

Both handlers receive the database connection and configuration.
*/
package router
