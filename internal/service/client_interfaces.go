package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-field-survey/models"
)

// Reconciler computes the store mutations that bring the local snapshot in
// line with a full remote listing. It performs no I/O.
type Reconciler interface {
	// Reconcile compares local and remote and returns the plan. Remote ids
	// listed in unreadable are treated as present on the server but not
	// comparable. The only possible error is ctx.Err().
	Reconcile(ctx context.Context, local, remote []models.Observation, unreadable ...string) (models.SyncPlan, error)
}

// ClientSyncService drives sync passes between the local store and the remote
// API and exposes the refreshed record set.
type ClientSyncService interface {
	// RunSyncPass runs one full pass and blocks until it ends. Passes never
	// overlap: a call made while another pass runs waits for it. Remote
	// failures are reported in the returned SyncReport; only local store
	// failures are returned, wrapped with ErrLocalPersistence.
	RunSyncPass(ctx context.Context) (models.SyncReport, error)

	// Trigger requests a pass in the background without blocking. At most one
	// pass runs and at most one more is queued behind it; further triggers are
	// dropped.
	Trigger(ctx context.Context) models.TriggerOutcome

	// WaitIdle blocks until no pass is running or queued, or ctx is done.
	WaitIdle(ctx context.Context) error

	// SyncNow requests a pass through Trigger and waits until the service is
	// idle. It coalesces with background passes and returns the report and
	// local store error of the last pass, which started after the request.
	SyncNow(ctx context.Context) (models.SyncReport, error)

	// Refresh reloads the snapshot from the local store.
	Refresh(ctx context.Context) error

	// Snapshot returns a copy of the record set, newest first, as of the last
	// pass or Refresh.
	Snapshot() []models.Observation

	// LastReport returns the report of the last completed pass.
	LastReport() models.SyncReport

	// Online reports whether the remote API answers its health check.
	Online(ctx context.Context) bool

	// MigrateLegacyIDs asks the remote API to rewrite legacy ids, then
	// triggers a pass so local records pick up the new ids.
	MigrateLegacyIDs(ctx context.Context) (models.MigrationReport, error)
}

// ClientSyncJob is the background worker that triggers a pass on every tick.
type ClientSyncJob interface {
	// Start launches the ticker goroutine. Any previously running job is
	// stopped before the new one begins.
	Start(ctx context.Context) error

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ClientObservationService is the record-level API used by the CLI. Every
// mutation is persisted locally first and then triggers a background sync.
type ClientObservationService interface {
	// Create stores a new record under a temporary id with version 1.
	Create(ctx context.Context, payload models.Payload) (models.Observation, error)

	// Update replaces the payload of the record matching id (logical or
	// remote), bumps its version and marks it unsynced.
	Update(ctx context.Context, id string, payload models.Payload) (models.Observation, error)

	// Delete removes the record matching id. When the record carries a
	// canonical remote id the deletion is sent to the remote API, or queued
	// when it cannot be sent now.
	Delete(ctx context.Context, id string) error

	// Get returns the record whose logical or remote id equals id.
	Get(ctx context.Context, id string) (models.Observation, error)

	// List returns the stored records matching filter, newest first.
	List(ctx context.Context, filter models.ObservationFilter) ([]models.Observation, error)

	// SyncOne runs a pass and returns the post-pass state of the record
	// matching id.
	SyncOne(ctx context.Context, id string) (models.Observation, models.SyncReport, error)
}

// ClientTransferService moves records in and out of JSON files.
type ClientTransferService interface {
	// Export writes every stored record to w as an indented JSON array of
	// envelopes and returns how many were written.
	Export(ctx context.Context, w io.Writer) (int, error)

	// ExportOne writes the record matching id to w as one JSON envelope.
	ExportOne(ctx context.Context, id string, w io.Writer) (models.Observation, error)

	// Import reads a JSON array or a single object from r. Each element may
	// be an envelope or a legacy flat document. Accepted records are stored
	// unsynced and a sync is triggered.
	Import(ctx context.Context, r io.Reader) (models.ImportReport, error)
}
