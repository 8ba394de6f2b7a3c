// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Migration is one numbered schema change. Numbers are applied in
// ascending order and recorded exactly once in schema_migrations.
type Migration struct {
	Number int
	Name   string
	SQL    string
}

// Migrations is the full ordered history of the schema. Append only;
// never edit an entry that may already be recorded in a live database.
var Migrations = []Migration{
	{
		Number: 1,
		Name:   "create_polls",
		SQL: `
			CREATE TABLE polls (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				author_name TEXT NOT NULL,
				author_email TEXT,
				pub_date TIMESTAMP NOT NULL,
				manage_code TEXT NOT NULL UNIQUE
			);
			CREATE INDEX idx_polls_manage_code ON polls(manage_code);
		`,
	},
	{
		Number: 2,
		Name:   "create_choices",
		SQL: `
			CREATE TABLE choices (
				id TEXT PRIMARY KEY,
				poll_id TEXT NOT NULL REFERENCES polls(id),
				start_datetime TIMESTAMP NOT NULL,
				end_datetime TIMESTAMP NOT NULL
			);
			CREATE INDEX idx_choices_poll_id ON choices(poll_id);
		`,
	},
	{
		Number: 3,
		Name:   "create_votes",
		SQL: `
			CREATE TABLE votes (
				id TEXT PRIMARY KEY,
				poll_id TEXT NOT NULL REFERENCES polls(id),
				choice_id TEXT NOT NULL REFERENCES choices(id),
				voter_name TEXT NOT NULL,
				value INTEGER NOT NULL DEFAULT 0 CHECK (value IN (0, 1)),
				manage_code TEXT NOT NULL
			);
			CREATE INDEX idx_votes_poll_id ON votes(poll_id);
			CREATE INDEX idx_votes_choice_id ON votes(choice_id);
			CREATE INDEX idx_votes_manage_code ON votes(manage_code);
		`,
	},
	{
		Number: 4,
		Name:   "add_poll_whole_day",
		SQL: `
			ALTER TABLE polls ADD COLUMN is_whole_day BOOLEAN NOT NULL DEFAULT FALSE;
		`,
	},
	{
		Number: 5,
		Name:   "unique_vote_per_voter_choice",
		SQL: `
			CREATE UNIQUE INDEX idx_votes_choice_voter ON votes(poll_id, choice_id, voter_name);
		`,
	},
}

// Migrate applies every pending migration in ascending order and returns
// the number applied. Already-recorded migrations are skipped.
func Migrate(db *sql.DB) (int, error) {
	if err := ensureMigrationsTable(db); err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range Migrations {
		didApply, err := applyOne(db, m)
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", m.Number, m.Name, err)
		}
		if didApply {
			slog.Info("migration applied", "number", m.Number, "name", m.Name)
			applied++
		} else {
			slog.Debug("migration already applied", "number", m.Number, "name", m.Name)
		}
	}

	return applied, nil
}

func ensureMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			number INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// applyOne records then executes a single migration inside one
// transaction, so a failed script leaves no trace of having run.
// Returns false without error when the number is already recorded.
func applyOne(db *sql.DB, m Migration) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE number = $1`, m.Number).Scan(&count)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = tx.Exec(`INSERT INTO schema_migrations (number, name, applied_at) VALUES ($1, $2, $3)`,
		m.Number, m.Name, time.Now())
	if err != nil {
		return false, err
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		return false, err
	}

	return true, tx.Commit()
}
