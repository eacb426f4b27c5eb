// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and handles schema creation and seeding.

# Connecting

Open picks the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq. "sqlite" uses modernc.org/sqlite with a busy
timeout, WAL journaling and a single open connection.

# Schema Creation

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

  - entry: votable games and their vote_count (CHECK vote_count >= 0)

The index on (vote_count DESC, id) backs the list ordering.

# Seeding

Entries are created out-of-band. Seed fills an empty table from a JSON
array of entries and does nothing when rows already exist. The check and the
inserts run in one transaction, so a bad entry leaves the table empty:

	entries, err := db.LoadSeedFile("games.json")
	n, err := db.Seed(ctx, store.NewEntryStore(conn), entries)
*/
package db
