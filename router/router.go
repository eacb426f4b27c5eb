// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gamevote/cliparse"
	"github.com/danielhkuo/gamevote/handlers"
	"github.com/danielhkuo/gamevote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	entriesHandler := handlers.NewEntriesHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Game list
	mux.HandleFunc("GET /api/entries", middleware.WithLogging(entriesHandler.ListEntries))

	// Voting (public, unauthenticated)
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(votingHandler.Vote))

	// Root endpoint. {$} keeps it from swallowing other paths, so a GET on
	// /api/vote still gets 405.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gamevote API v1"))
	})

	return mux
}
