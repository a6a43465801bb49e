package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when an insert or identity-field update
	// collides with another account's username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when an insert or identity-field update
	// collides with another account's email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrPhoneTaken is returned when an insert or identity-field update
	// collides with another account's phone number.
	ErrPhoneTaken = errors.New("phone already exists")

	// ErrAccountNotFound is returned when a query expected to match exactly
	// one account row produces an empty result set.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrThreadNotFound is returned when a query or update targets a thread
	// that does not exist, is tombstoned, or belongs to another account.
	ErrThreadNotFound = errors.New("thread was not found")

	// ErrNoteNotFound is returned when a query or update targets a note
	// that does not exist or belongs to another account.
	ErrNoteNotFound = errors.New("note was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
