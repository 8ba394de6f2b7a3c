// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence boundary for polls, choices, and votes.

Every operation runs inside exactly one transaction: the deferred
rollback in withTx guarantees release on every exit path, and no
observable partial write can escape a failed call. Nothing holds a
transaction open across operations, and there is no in-process locking;
correctness under concurrent requests comes from the backing store's
transaction isolation and uniqueness constraints.

Outcomes callers must distinguish:

  - ErrNotFound: an id or manage code did not resolve
  - ErrDuplicateSubmission: a vote submission lost to the uniqueness
    constraint on (poll, choice, voter name); nothing was written
  - ErrStoreUnavailable: the stale-connection retry ceiling was hit
  - *models.ValidationError: the input referenced a choice outside
    the poll

Cascades are manual and complete: deleting a choice removes its votes in
the same transaction, and deleting a poll removes its choices and votes.
The store works against postgres (lib/pq) and sqlite (modernc.org/sqlite)
with the same statements.
*/
package store
