// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and wire types shared by the server and
the client.

# Domain Types

  - Entry: a votable game with its vote count
  - Date: calendar date, encoded as "YYYY-MM-DD"

# Response Types

Every response is an envelope with a success flag:

  - ListEntriesResponse: success, data, total
  - VoteResponse: success, message, votos, juego_id
  - ErrorResponse: success (always false), error, message

JSON null is used for an absent releaseDate or coverImage. Clients show
PlaceholderImage when coverImage is null.
*/
package models
