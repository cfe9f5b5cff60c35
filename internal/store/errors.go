package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the addressed vault or entry does not
	// exist for the given user.
	ErrNotFound = errors.New("record not found")

	// ErrVaultNameTaken is returned when a vault insert violates the
	// per-user unique name key.
	ErrVaultNameTaken = errors.New("vault name already taken")

	// ErrUnsupportedDSN is returned by [Open] and [NewStorages] for a DSN
	// whose scheme matches no backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT or DML statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	ErrScanningRow  = errors.New("failed to scan row")
	ErrScanningRows = errors.New("failed to iterate rows")
)
