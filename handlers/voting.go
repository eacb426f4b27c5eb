// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gamevote/cliparse"
	"github.com/danielhkuo/gamevote/middleware"
	"github.com/danielhkuo/gamevote/models"
	"github.com/danielhkuo/gamevote/store"
)

type VotingHandler struct {
	store *store.EntryStore
	cfg   cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: store.NewEntryStore(db), cfg: cfg}
}

// Vote handles POST /api/vote
// Expects a form field "id". Adds one vote and returns the stored count.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	// Validate before touching storage
	id, err := ParseEntryID(r.FormValue("id"))
	if err != nil {
		slog.Debug("rejected vote", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	votes, err := h.store.IncrementVote(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgEntryNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to increment vote", "error", err, "entry_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgVoteFailed)
		return
	}

	slog.Info("vote recorded", "entry_id", id, "votes", votes)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Success: true,
		Message: msgVoteRecorded,
		Votes:   votes,
		EntryID: id,
	})
}
