package store

import (
	"context"

	"github.com/MKhiriev/go-field-survey/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalObservationRepository is the on-device observation store: a key-value
// collection keyed by logical id. Writes to different keys are independent;
// there is no multi-key transaction.
type LocalObservationRepository interface {
	// SaveObservation inserts o or replaces the record stored under
	// o.LogicalID.
	SaveObservation(ctx context.Context, o models.Observation) error
	// GetObservation returns the record stored under logicalID or
	// ErrObservationNotFound.
	GetObservation(ctx context.Context, logicalID string) (models.Observation, error)
	// GetAllObservations returns every stored record, newest first.
	GetAllObservations(ctx context.Context) ([]models.Observation, error)
	// DeleteObservation removes the record stored under logicalID. Deleting
	// a missing key is not an error.
	DeleteObservation(ctx context.Context, logicalID string) error
}

// PendingDeletionRepository remembers remote ids whose deletion has not yet
// reached the remote API.
type PendingDeletionRepository interface {
	// EnqueueDeletion records remoteID. Enqueuing twice is a no-op.
	EnqueueDeletion(ctx context.Context, remoteID string) error
	// PendingDeletions returns queued remote ids, oldest first.
	PendingDeletions(ctx context.Context) ([]string, error)
	// RemoveDeletion drops remoteID from the queue.
	RemoveDeletion(ctx context.Context, remoteID string) error
}
