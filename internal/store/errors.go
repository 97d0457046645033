package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query expected to match at least
	// one record produces an empty result set.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordExists is returned when an INSERT fails because a record with
	// the same client identifier already exists.
	ErrRecordExists = errors.New("record already exists")

	// ErrRecordNotSaved is returned when a write completes without error but
	// the number of affected rows is zero, indicating that no data was
	// actually persisted.
	ErrRecordNotSaved = errors.New("record was not saved")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version supplied by the client is not newer than the version stored
	// in the database, meaning another device has modified the record since
	// the client last synchronized.
	ErrVersionConflict = errors.New("record version conflict occurred")
)
