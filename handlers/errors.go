// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidInput = errors.New("invalid entry id")

// Public messages. Driver errors never reach the response body.
const (
	msgInvalidID     = "Invalid entry id"
	msgEntryNotFound = "Entry not found"
	msgVoteFailed    = "Failed to process vote"
	msgListFailed    = "Failed to load entries"
	msgVoteRecorded  = "Vote recorded"
)

// ParseEntryID validates a raw id: it must be present and a base-10
// positive integer
func ParseEntryID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing", ErrInvalidInput)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidInput, id)
	}

	return id, nil
}
