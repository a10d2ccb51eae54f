package service

import "errors"

var (
	// ErrLocalPersistence wraps every local store failure returned by a
	// service. It is the only error a sync pass returns.
	ErrLocalPersistence = errors.New("local persistence failure")

	// ErrObservationNotFound is returned when no record matches the given
	// logical or remote id.
	ErrObservationNotFound = errors.New("observation not found")

	// ErrMalformedImport is returned when an import file is not a JSON array
	// or object.
	ErrMalformedImport = errors.New("malformed import data")

	// ErrInvalidDataProvided is returned when a payload fails validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrEmptyID is returned when a lookup is called without an id.
	ErrEmptyID = errors.New("empty observation id")
)

// Errors surfaced from remote calls made on behalf of the user.
var (
	ErrRemoteUnavailable = errors.New("remote api unavailable")
	ErrRemoteRejected    = errors.New("remote api rejected the request")
)
