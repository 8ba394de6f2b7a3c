// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/models"
)

// CreatePollParams carries the typed fields for poll creation. Field
// validation happens upstream in models; the store persists what it is
// given.
type CreatePollParams struct {
	Title       string
	Description string
	AuthorName  string
	AuthorEmail string
	IsWholeDay  bool
}

// PollInfoParams carries the typed fields for a poll-info update.
type PollInfoParams struct {
	Title       string
	Description string
	AuthorName  string
	AuthorEmail string
	IsWholeDay  bool
}

// CreatePoll persists one poll row with a fresh id and manage code and
// returns the new poll (with an empty choice list).
func (s *Store) CreatePoll(params CreatePollParams) (*models.Poll, error) {
	manageCode, err := auth.GenerateManageCode()
	if err != nil {
		return nil, err
	}

	poll := &models.Poll{
		ID:          auth.GenerateID(),
		Title:       params.Title,
		Description: nilIfEmpty(params.Description),
		AuthorName:  params.AuthorName,
		AuthorEmail: nilIfEmpty(params.AuthorEmail),
		PubDate:     time.Now(),
		ManageCode:  manageCode,
		IsWholeDay:  params.IsWholeDay,
		Choices:     []models.Choice{},
	}

	err = s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO polls (id, title, description, author_name, author_email, pub_date, manage_code, is_whole_day)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, poll.ID, poll.Title, poll.Description, poll.AuthorName, poll.AuthorEmail,
			poll.PubDate, poll.ManageCode, poll.IsWholeDay)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return poll, nil
}

// GetPoll loads a poll with its choices (ascending by start time) and
// their votes, as one consistent transactional read.
func (s *Store) GetPoll(id string) (*models.Poll, error) {
	var poll *models.Poll
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		poll, err = getPollTx(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// GetPollByCode resolves a manage code and loads the poll it grants
// rights over, hydrated the same way as GetPoll.
func (s *Store) GetPollByCode(code string) (*models.Poll, error) {
	var poll *models.Poll
	err := s.withTx(func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRow(`SELECT id FROM polls WHERE manage_code = $1`, code).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		poll, err = getPollTx(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// UpdatePollInfo updates the organizer-editable fields of the poll the
// manage code resolves to. Returns ErrNotFound when the code does not
// resolve, which callers must keep distinct from a validation failure.
func (s *Store) UpdatePollInfo(code string, params PollInfoParams) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE polls
			SET title = $1, description = $2, author_name = $3, author_email = $4, is_whole_day = $5
			WHERE manage_code = $6
		`, params.Title, nilIfEmpty(params.Description), params.AuthorName,
			nilIfEmpty(params.AuthorEmail), params.IsWholeDay, code)
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

// DeletePoll removes the poll the manage code resolves to, together with
// every choice and vote it owns. The cascade is manual so no orphan row
// can survive regardless of backend FK settings.
func (s *Store) DeletePoll(code string) error {
	return s.withTx(func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRow(`SELECT id FROM polls WHERE manage_code = $1`, code).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM choices WHERE poll_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM polls WHERE id = $1`, id); err != nil {
			return err
		}
		return nil
	})
}

// GetPollsByCodes bulk-loads the polls behind a set of manage codes,
// newest first. Choices are not hydrated; this feeds the "my polls"
// listing only. Empty input returns an empty slice without a query.
func (s *Store) GetPollsByCodes(codes []string) ([]models.Poll, error) {
	if len(codes) == 0 {
		return []models.Poll{}, nil
	}

	placeholders := make([]string, len(codes))
	args := make([]interface{}, len(codes))
	for i, code := range codes {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = code
	}

	var polls []models.Poll
	err := s.withTx(func(tx *sql.Tx) error {
		rows, err := tx.Query(`
			SELECT id, title, description, author_name, author_email, pub_date, manage_code, is_whole_day
			FROM polls
			WHERE manage_code IN (`+strings.Join(placeholders, ", ")+`)
			ORDER BY pub_date DESC
		`, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		polls = []models.Poll{}
		for rows.Next() {
			poll, err := scanPoll(rows)
			if err != nil {
				return err
			}
			polls = append(polls, *poll)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// getPollTx hydrates one poll aggregate inside the caller's transaction:
// the poll row, its choices sorted ascending by start_datetime, and each
// choice's votes grouped in.
func getPollTx(tx *sql.Tx, id string) (*models.Poll, error) {
	row := tx.QueryRow(`
		SELECT id, title, description, author_name, author_email, pub_date, manage_code, is_whole_day
		FROM polls
		WHERE id = $1
	`, id)
	poll, err := scanPoll(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	choiceRows, err := tx.Query(`
		SELECT id, poll_id, start_datetime, end_datetime
		FROM choices
		WHERE poll_id = $1
		ORDER BY start_datetime
	`, id)
	if err != nil {
		return nil, err
	}
	defer choiceRows.Close()

	poll.Choices = []models.Choice{}
	for choiceRows.Next() {
		var c models.Choice
		if err := choiceRows.Scan(&c.ID, &c.PollID, &c.StartDatetime, &c.EndDatetime); err != nil {
			return nil, err
		}
		c.Votes = []models.Vote{}
		poll.Choices = append(poll.Choices, c)
	}
	if err := choiceRows.Err(); err != nil {
		return nil, err
	}

	voteRows, err := tx.Query(`
		SELECT id, poll_id, choice_id, voter_name, value, manage_code
		FROM votes
		WHERE poll_id = $1
		ORDER BY voter_name
	`, id)
	if err != nil {
		return nil, err
	}
	defer voteRows.Close()

	byChoice := make(map[string]int, len(poll.Choices))
	for i, c := range poll.Choices {
		byChoice[c.ID] = i
	}

	for voteRows.Next() {
		var v models.Vote
		if err := voteRows.Scan(&v.ID, &v.PollID, &v.ChoiceID, &v.VoterName, &v.Value, &v.ManageCode); err != nil {
			return nil, err
		}
		if i, ok := byChoice[v.ChoiceID]; ok {
			poll.Choices[i].Votes = append(poll.Choices[i].Votes, v)
		}
	}
	if err := voteRows.Err(); err != nil {
		return nil, err
	}

	return poll, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPoll decodes a poll row by its named column list. The column order
// here must match every SELECT that feeds it.
func scanPoll(row rowScanner) (*models.Poll, error) {
	var poll models.Poll
	var description, authorEmail sql.NullString
	err := row.Scan(&poll.ID, &poll.Title, &description, &poll.AuthorName,
		&authorEmail, &poll.PubDate, &poll.ManageCode, &poll.IsWholeDay)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		poll.Description = &description.String
	}
	if authorEmail.Valid {
		poll.AuthorEmail = &authorEmail.String
	}
	return &poll, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
