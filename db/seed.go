// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielhkuo/gamevote/models"
	"github.com/danielhkuo/gamevote/store"
)

// LoadSeedFile reads a JSON array of entries
func LoadSeedFile(path string) ([]models.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return entries, nil
}

// Seed inserts entries only when the entry table is empty, so restarting
// the server never duplicates the catalogue. The emptiness check and every
// insert share one transaction: a bad entry leaves the table empty, and a
// corrected file seeds fully on the next run. Returns the number inserted.
func Seed(ctx context.Context, s *store.EntryStore, entries []models.Entry) (int, error) {
	inserted := 0
	err := s.InTx(ctx, func(tx *store.EntryStore) error {
		existing, err := tx.Count(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		for _, entry := range entries {
			if _, err := tx.Insert(ctx, entry); err != nil {
				return fmt.Errorf("failed to seed entry %q: %w", entry.Name, err)
			}
		}
		inserted = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
