// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by LocalStore methods to signal well-known lookup
// misses. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when no SyncRecord exists for the
	// requested entity type and client id.
	ErrRecordNotFound = errors.New("sync record was not found")

	// ErrBindingNotFound is returned when no identity binding exists for the
	// requested client or server id.
	ErrBindingNotFound = errors.New("identity binding was not found")

	// ErrCursorNotFound is returned when an entity type has never completed
	// a pull.
	ErrCursorNotFound = errors.New("sync cursor was not found")

	// ErrConflictNotFound is returned when no escalated conflict is stored
	// for the requested record.
	ErrConflictNotFound = errors.New("conflict was not found")

	// ErrUnknownDriver is returned by NewLocalStore for an unsupported
	// driver name.
	ErrUnknownDriver = errors.New("unknown local store driver")
)

// Low-level database operation errors. These are wrapped by the SQL store
// when a statement fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
