// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the schema migration history.

# Running Migrations

	if _, err := db.Migrate(conn); err != nil {
		log.Fatal(err)
	}

Applied migration numbers are recorded in schema_migrations; re-running
is a no-op for anything already recorded. Each migration records its row
and executes its script in a single transaction, so a failed script is
rolled back together with its record.

# Tables

  - polls: poll info plus the organizer's manage_code
  - choices: one proposed time window per row, owned by a poll
  - votes: one (voter, choice) availability value per row, stamped with
    the vote-session manage_code
  - schema_migrations: applied migration numbers

# Relationships

	polls 1──* choices
	choices 1──* votes

Cascades are performed manually by the store inside the deleting
transaction, so the same statements run identically under postgres
and sqlite.
*/
package db
