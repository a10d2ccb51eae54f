package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrObservationNotFound is returned when no record is stored under the
	// requested logical id.
	ErrObservationNotFound = errors.New("observation was not found")

	// ErrEmptyKey is returned when a write or delete targets an empty logical
	// or remote id.
	ErrEmptyKey = errors.New("empty storage key")

	// ErrUnknownDriver is returned by NewClientStorages for an unsupported
	// storage driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level storage operation errors. These are wrapped by repository methods
// when the underlying engine fails before any domain logic can be applied.
var (
	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when a row cannot be decoded into a record.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingRecord is returned when a record cannot be serialized for a
	// key-value bucket, or a stored value cannot be deserialized.
	ErrEncodingRecord = errors.New("failed to encode record")
)
