// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gamevote/cliparse"
	"github.com/danielhkuo/gamevote/middleware"
	"github.com/danielhkuo/gamevote/models"
	"github.com/danielhkuo/gamevote/store"
)

type EntriesHandler struct {
	store *store.EntryStore
	cfg   cliparse.Config
}

func NewEntriesHandler(db *sql.DB, cfg cliparse.Config) *EntriesHandler {
	return &EntriesHandler{store: store.NewEntryStore(db), cfg: cfg}
}

// ListEntries handles GET /api/entries
// Returns every entry, most votes first (ties by id ascending)
func (h *EntriesHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListByVotes(r.Context())
	if err != nil {
		slog.Error("failed to list entries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgListFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListEntriesResponse{
		Success: true,
		Data:    entries,
		Total:   len(entries),
	})
}
