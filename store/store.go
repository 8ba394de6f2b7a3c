// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound means an id or manage code did not resolve to a row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSubmission means a vote submission lost to the
	// uniqueness constraint. Nothing was persisted; the caller may
	// surface an "already voted" outcome.
	ErrDuplicateSubmission = errors.New("duplicate submission")

	// ErrStoreUnavailable means a transaction could not be started
	// within the retry ceiling.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// maxBeginRetries bounds reconnect attempts when a pooled connection has
// gone stale.
const maxBeginRetries = 5

// Store is the persistence boundary. It owns the connection pool and runs
// every operation inside a single transaction.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// begin starts a transaction, retrying on stale-connection errors up to
// the retry ceiling. Retries are invisible to callers.
func (s *Store) begin() (*sql.Tx, error) {
	var lastErr error
	for i := 0; i < maxBeginRetries; i++ {
		tx, err := s.db.Begin()
		if err == nil {
			return tx, nil
		}
		if !isConnError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lastErr)
}

// withTx runs fn inside a transaction. The deferred rollback guarantees
// release on every exit path; it is a no-op after a successful commit.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func isConnError(err error) bool {
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone)
}

// isUniqueViolation recognizes a uniqueness-constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
