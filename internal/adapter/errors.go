package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from remote API status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

// ErrUnexpectedResponse is returned when a 2xx answer cannot be decoded into
// the expected shape.
var ErrUnexpectedResponse = errors.New("unexpected response body")

// PartialListingError is returned together with a listing in which some
// documents could not be decoded. IDs holds the remote ids of those documents;
// Anonymous counts the ones without a readable id.
type PartialListingError struct {
	IDs       []string
	Anonymous int
}

func (e *PartialListingError) Error() string {
	return fmt.Sprintf("%d undecodable remote document(s), %d without id", len(e.IDs)+e.Anonymous, e.Anonymous)
}

func (e *PartialListingError) Unwrap() error {
	return ErrUnexpectedResponse
}
