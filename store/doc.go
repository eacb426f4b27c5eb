// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the entry store: reads of the game list and the vote
increment.

	s := store.NewEntryStore(conn)
	entries, err := s.ListByVotes(ctx)
	votes, err := s.IncrementVote(ctx, id)

Queries use $N placeholders, which both lib/pq and modernc.org/sqlite
accept.

# Vote Counting

IncrementVote runs one UPDATE ... RETURNING statement. The database applies
it atomically, so two simultaneous votes on one entry both land, and the
returned count is the value now stored. vote_count can only grow: there is
no setter and no delete.

# Transactions

InTx hands fn a store bound to one transaction; an error from fn rolls
back everything it wrote.

# Errors

  - ErrNotFound: no entry with that id (nothing was changed)
  - ErrStorageUnavailable: the query failed; the driver error is wrapped
    alongside it for logging
  - ErrInvalidEntry: Insert rejected the entry
*/
package store
