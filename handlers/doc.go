// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface and the availability
aggregation read path.

# Handlers

  - PollHandler: create, public read (with the derived matrix), and the
    bulk "my polls" lookup
  - ManageHandler: everything gated by a poll manage code (info update,
    choice add/remove, poll delete)
  - VotingHandler: vote submission and vote-session retraction

All identifiers and codes are format-checked before any store access, so
malformed input is a 400 rather than a 404.

# Aggregation

availability.go derives the presentation model from a hydrated poll:
the alphabetical voter list, the (voter, choice) selection matrix, and
the set of voter names the current client can manage. These are pure
functions over models.Poll.
*/
package handlers
