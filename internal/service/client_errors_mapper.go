// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-field-survey/internal/adapter"
	"github.com/MKhiriev/go-field-survey/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// error for calls whose failure reaches the user (legacy id migration).
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrObservationNotFound, msg)

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %s", ErrRemoteRejected, msg)

	case errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable):
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, msg)
	}

	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}

// mapStoreError wraps a local store failure with ErrLocalPersistence, except
// a missing record which maps to ErrObservationNotFound.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrObservationNotFound) {
		return ErrObservationNotFound
	}
	return fmt.Errorf("%w: %w", ErrLocalPersistence, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
