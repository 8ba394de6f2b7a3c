// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"time"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/models"
)

// AddChoice inserts one time-window choice into the poll the manage code
// resolves to. Returns ErrNotFound when the code does not resolve.
// Window validation (ordering, parsing) happens upstream in models.
func (s *Store) AddChoice(code string, start, end time.Time) (*models.Choice, error) {
	choice := &models.Choice{
		ID:            auth.GenerateID(),
		StartDatetime: start,
		EndDatetime:   end,
		Votes:         []models.Vote{},
	}

	err := s.withTx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`SELECT id FROM polls WHERE manage_code = $1`, code).Scan(&choice.PollID)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO choices (id, poll_id, start_datetime, end_datetime)
			VALUES ($1, $2, $3, $4)
		`, choice.ID, choice.PollID, choice.StartDatetime, choice.EndDatetime)
		return err
	})
	if err != nil {
		return nil, err
	}

	return choice, nil
}

// DeleteChoice removes a choice and every vote referencing it. Both
// statements run in one transaction; sibling choices and their votes are
// untouched.
func (s *Store) DeleteChoice(choiceID string) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM votes WHERE choice_id = $1`, choiceID); err != nil {
			return err
		}

		res, err := tx.Exec(`DELETE FROM choices WHERE id = $1`, choiceID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
