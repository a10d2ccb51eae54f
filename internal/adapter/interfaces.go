// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote observation API.
//
// The primary abstraction is [RemoteStore], which decouples the sync service
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]) and a [ConnectivityProbe] built on its health check.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrBadRequest] for 400, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-field-survey/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the remote
// observation collection. Implementations are responsible for serialisation
// and for mapping transport-level errors to the sentinel values defined in
// this package.
type RemoteStore interface {
	// CheckHealth calls the health endpoint. A non-2xx answer is an error.
	CheckHealth(ctx context.Context) (models.HealthStatus, error)

	// ListObservations returns the full remote collection, decoded into
	// envelopes. The remote id of each record is taken from `_id` or `id`.
	// When some documents cannot be decoded the rest are returned together
	// with a [*PartialListingError] naming them.
	ListObservations(ctx context.Context) ([]models.Observation, error)

	// GetObservation returns one remote record or [ErrNotFound].
	GetObservation(ctx context.Context, remoteID string) (models.Observation, error)

	// CreateObservation POSTs o without any identifier and returns the id and
	// version assigned by the remote API.
	CreateObservation(ctx context.Context, o models.Observation) (models.PushResult, error)

	// UpdateObservation PUTs o under remoteID. The remote API increments the
	// version itself and answers [ErrNotFound] for unknown ids and
	// [ErrBadRequest] for ids it cannot parse.
	UpdateObservation(ctx context.Context, remoteID string, o models.Observation) (models.PushResult, error)

	// DeleteObservation removes remoteID from the remote collection.
	DeleteObservation(ctx context.Context, remoteID string) error

	// MigrateLegacyIDs asks the remote API to rewrite documents stored under
	// non-canonical ids.
	MigrateLegacyIDs(ctx context.Context) (models.MigrationReport, error)
}

// ConnectivityProbe decides whether the remote API is reachable right now.
type ConnectivityProbe interface {
	// Reachable never blocks longer than the configured probe timeout and
	// never returns an error: any failure means "offline".
	Reachable(ctx context.Context) bool
}
