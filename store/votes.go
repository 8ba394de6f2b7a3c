// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/models"
)

// SubmitVote writes one voter's submission over the poll's current choice
// set and returns the vote-session manage code minted for it.
//
// The submission is a dense snapshot: exactly one row per choice that
// exists at submission time, value 1 for the choice ids in selected and 0
// for everything else, all stamped with the same fresh manage code and
// committed as one atomic unit. A uniqueness-constraint loss (the same
// voter name already holds rows on any of the poll's choices, or a
// concurrent submission won the race) rolls the whole submission back and
// returns ErrDuplicateSubmission.
func (s *Store) SubmitVote(pollID, voterName string, selected map[string]bool) (string, error) {
	voteCode, err := auth.GenerateManageCode()
	if err != nil {
		return "", err
	}

	err = s.withTx(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow(`SELECT COUNT(*) FROM polls WHERE id = $1`, pollID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}

		rows, err := tx.Query(`SELECT id FROM choices WHERE poll_id = $1`, pollID)
		if err != nil {
			return err
		}
		defer rows.Close()

		choiceIDs := []string{}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			choiceIDs = append(choiceIDs, id)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		known := make(map[string]bool, len(choiceIDs))
		for _, id := range choiceIDs {
			known[id] = true
		}
		for id := range selected {
			if !known[id] {
				return &models.ValidationError{Message: "unknown choice id: " + id}
			}
		}

		for _, choiceID := range choiceIDs {
			value := 0
			if selected[choiceID] {
				value = 1
			}
			_, err := tx.Exec(`
				INSERT INTO votes (id, poll_id, choice_id, voter_name, value, manage_code)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, auth.GenerateID(), pollID, choiceID, voterName, value, voteCode)
			if err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicateSubmission
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return voteCode, nil
}

// DeleteVoteSession removes every vote row carrying the given
// vote-session manage code and returns the voter name that owned them.
// An unknown (or already-deleted) code returns ErrNotFound, so a repeat
// call is a clean miss rather than a fault.
func (s *Store) DeleteVoteSession(code string) (string, error) {
	var voterName string
	err := s.withTx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`SELECT voter_name FROM votes WHERE manage_code = $1 LIMIT 1`, code).Scan(&voterName)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`DELETE FROM votes WHERE manage_code = $1`, code)
		return err
	})
	if err != nil {
		return "", err
	}
	return voterName, nil
}

// VoterNamesByCodes resolves a set of vote-session manage codes presented
// back by a client to the voter names they belong to within one poll.
// Unknown codes are skipped. This is the "who am I" correlation used to
// mark names as self-manageable without accounts.
func (s *Store) VoterNamesByCodes(pollID string, codes []string) (map[string]bool, error) {
	names := map[string]bool{}
	if len(codes) == 0 {
		return names, nil
	}

	err := s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`SELECT DISTINCT voter_name FROM votes WHERE poll_id = $1 AND manage_code = $2`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, code := range codes {
			var name string
			err := stmt.QueryRow(pollID, code).Scan(&name)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return err
			}
			names[name] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
