package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/MKhiriev/go-field-survey/internal/adapter"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/models"
)

type clientSyncService struct {
	observations store.LocalObservationRepository
	deletions    store.PendingDeletionRepository
	remote       adapter.RemoteStore
	probe        adapter.ConnectivityProbe
	reconciler   Reconciler
	normalizer   *IdentityNormalizer
	logger       *logger.Logger

	// locker guards read-modify-write of single records. It is shared with
	// the record and transfer services.
	locker sync.Locker

	// passMu serializes passes.
	passMu sync.Mutex

	// trigger state
	stateMu sync.Mutex
	running bool
	queued  bool
	idle    chan struct{}

	snapMu   sync.RWMutex
	snapshot []models.Observation
	report   models.SyncReport
	passErr  error
}

// NewClientSyncService wires the sync orchestrator. locker must be the same
// value handed to the other client services.
func NewClientSyncService(
	storages *store.ClientStorages,
	remote adapter.RemoteStore,
	probe adapter.ConnectivityProbe,
	normalizer *IdentityNormalizer,
	locker sync.Locker,
	logger *logger.Logger,
) ClientSyncService {
	return &clientSyncService{
		observations: storages.Observations,
		deletions:    storages.Deletions,
		remote:       remote,
		probe:        probe,
		reconciler:   NewReconciler(normalizer),
		normalizer:   normalizer,
		logger:       logger,
		locker:       locker,
		snapshot:     make([]models.Observation, 0),
	}
}

// RunSyncPass implements ClientSyncService.
//
// A pass goes Probing → Offline | Downloading → Reconciling → Applying →
// Uploading → Idle. Each remote failure ends the pass at the phase it happened
// in and is only logged. A local store failure ends the pass and is returned.
// The snapshot is refreshed however the pass ends.
func (s *clientSyncService) RunSyncPass(ctx context.Context) (models.SyncReport, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	report := models.SyncReport{
		StartedAt:  s.normalizer.Now(),
		FinalPhase: models.PhaseProbing,
	}

	err := s.runPass(ctx, &report)
	if refreshErr := s.refreshSnapshot(ctx, &report); err == nil {
		err = refreshErr
	}
	report.FinishedAt = s.normalizer.Now()

	s.snapMu.Lock()
	s.report, s.passErr = report, err
	s.snapMu.Unlock()

	// Err logs at info level when err is nil
	s.logger.Err(err).Str("func", "clientSyncService.RunSyncPass").
		Str("phase", string(report.FinalPhase)).
		Bool("online", report.Online).
		Int("downloaded", report.Downloaded).
		Int("overwritten", report.Overwritten).
		Int("reclaimed", report.Reclaimed).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("push_failed", report.PushFailed).
		Int("pending", report.Pending).
		Msg("sync pass finished")

	return report, err
}

func (s *clientSyncService) runPass(ctx context.Context, report *models.SyncReport) error {
	// the snapshot every mutation is checked against
	local, err := s.observations.GetAllObservations(ctx)
	if err != nil {
		return mapStoreError(err)
	}

	if !s.probe.Reachable(ctx) {
		report.FinalPhase = models.PhaseOffline
		return nil
	}
	report.Online = true

	report.FinalPhase = models.PhaseDownloading
	pending, err := s.flushDeletions(ctx, report)
	if err != nil {
		return err
	}

	var unreadable []string
	remote, err := s.remote.ListObservations(ctx)
	var partial *adapter.PartialListingError
	switch {
	case errors.As(err, &partial) && partial.Anonymous == 0:
		// the listing is still complete by id
		unreadable = partial.IDs
		s.logger.Warn().Err(err).
			Str("func", "clientSyncService.runPass").
			Strs("remote_ids", partial.IDs).
			Msg("remote listing has undecodable documents, leaving their local copies untouched")
	case err != nil:
		s.logger.Warn().Err(err).
			Str("func", "clientSyncService.runPass").
			Msg("remote listing failed, pass ends without changes")
		return nil
	}
	remote = withoutPendingDeletions(remote, pending)

	report.FinalPhase = models.PhaseReconciling
	plan, err := s.reconciler.Reconcile(ctx, local, remote, unreadable...)
	if err != nil {
		return err
	}
	report.Downloaded = plan.Downloaded
	report.Overwritten = plan.Overwritten
	report.Reclaimed = plan.Reclaimed
	report.Duplicates = plan.Duplicates
	report.Claimed = plan.Claimed
	report.Skipped = plan.Skipped

	report.FinalPhase = models.PhaseApplying
	if err = s.applyPlan(ctx, plan, local); err != nil {
		return err
	}

	report.FinalPhase = models.PhaseUploading
	if err = s.pushUnsynced(ctx, report); err != nil {
		return err
	}

	report.FinalPhase = models.PhaseIdle
	return nil
}

// flushDeletions sends every queued remote deletion. A 2xx or 404 answer
// dequeues the id. It returns the ids still queued afterwards.
func (s *clientSyncService) flushDeletions(ctx context.Context, report *models.SyncReport) (map[string]struct{}, error) {
	ids, err := s.deletions.PendingDeletions(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	pending := make(map[string]struct{})
	for _, id := range ids {
		err := s.remote.DeleteObservation(ctx, id)
		if err != nil && !errors.Is(err, adapter.ErrNotFound) {
			s.logger.Warn().Err(err).
				Str("func", "clientSyncService.flushDeletions").
				Str("remote_id", id).
				Msg("remote deletion failed, kept in queue")
			pending[id] = struct{}{}
			continue
		}
		if err := s.deletions.RemoveDeletion(ctx, id); err != nil {
			return nil, mapStoreError(err)
		}
		report.DeletionsFlushed++
	}

	return pending, nil
}

func withoutPendingDeletions(remote []models.Observation, pending map[string]struct{}) []models.Observation {
	if len(pending) == 0 {
		return remote
	}
	kept := make([]models.Observation, 0, len(remote))
	for _, r := range remote {
		if _, queued := pending[r.RemoteID]; queued {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// applyPlan applies each mutation unless the record it targets changed after
// the pass snapshot was taken; a concurrent local edit always survives.
func (s *clientSyncService) applyPlan(ctx context.Context, plan models.SyncPlan, local []models.Observation) error {
	before := make(map[string]models.Observation, len(local))
	for _, o := range local {
		before[o.LogicalID] = o
	}

	for _, m := range plan.Mutations {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.withRecordLock(func() error {
			current, found, err := s.lookup(ctx, m.LogicalID)
			if err != nil {
				return err
			}
			snap, existed := before[m.LogicalID]
			if changedSince(snap, existed, current, found) {
				s.logger.Debug().
					Str("func", "clientSyncService.applyPlan").
					Str("logical_id", m.LogicalID).
					Str("kind", m.Kind.String()).
					Msg("record changed during pass, mutation skipped")
				return nil
			}

			switch m.Kind {
			case models.MutationUpsert:
				return mapStoreError(s.observations.SaveObservation(ctx, m.Observation))
			case models.MutationDeleteLocal:
				return mapStoreError(s.observations.DeleteObservation(ctx, m.LogicalID))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// pushUnsynced pushes every unsynced record: POST when it has no canonical
// remote id, PUT otherwise.
func (s *clientSyncService) pushUnsynced(ctx context.Context, report *models.SyncReport) error {
	records, err := s.observations.GetAllObservations(ctx)
	if err != nil {
		return mapStoreError(err)
	}

	for _, o := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if o.Synced {
			continue
		}

		if err := s.push(ctx, o, report); err != nil {
			return err
		}
	}

	return nil
}

func (s *clientSyncService) push(ctx context.Context, o models.Observation, report *models.SyncReport) error {
	log := s.logger.With().
		Str("func", "clientSyncService.push").
		Str("logical_id", o.LogicalID).
		Logger()

	if !IsCanonicalID(o.RemoteID) {
		res, err := s.remote.CreateObservation(ctx, o)
		if err != nil {
			log.Warn().Err(err).Msg("create failed, record stays pending")
			report.PushFailed++
			return nil
		}
		if !IsCanonicalID(res.RemoteID) {
			log.Warn().Str("remote_id", res.RemoteID).Msg("create answered a non-canonical id, record stays pending")
			report.PushFailed++
			return nil
		}
		report.Created++
		return s.adoptPushResult(ctx, o, res, true)
	}

	res, err := s.remote.UpdateObservation(ctx, o.RemoteID, o)
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		log.Warn().Err(err).Str("remote_id", o.RemoteID).Msg("update rejected, record demoted to create")
		report.PushFailed++
		report.Demoted++
		return s.demote(ctx, o)
	case err != nil:
		log.Warn().Err(err).Str("remote_id", o.RemoteID).Msg("update failed, record stays pending")
		report.PushFailed++
		return nil
	}
	if res.RemoteID == "" {
		res.RemoteID = o.RemoteID
	}
	report.Updated++
	return s.adoptPushResult(ctx, o, res, false)
}

// adoptPushResult records what the remote API accepted. The record is only
// marked synced when nobody touched it while the request was in flight.
func (s *clientSyncService) adoptPushResult(ctx context.Context, pushed models.Observation, res models.PushResult, created bool) error {
	return s.withRecordLock(func() error {
		current, found, err := s.lookup(ctx, pushed.LogicalID)
		if err != nil {
			return err
		}
		if !found {
			if created {
				// deleted locally while the create was in flight
				return mapStoreError(s.deletions.EnqueueDeletion(ctx, res.RemoteID))
			}
			return nil
		}

		unchanged := !changedSince(pushed, true, current, true)
		if created {
			current.RemoteID = res.RemoteID
		}
		current.Version = max(current.Version, res.Version)
		current.Synced = unchanged && IsCanonicalID(current.RemoteID)

		return mapStoreError(s.observations.SaveObservation(ctx, current))
	})
}

func (s *clientSyncService) demote(ctx context.Context, rejected models.Observation) error {
	return s.withRecordLock(func() error {
		current, found, err := s.lookup(ctx, rejected.LogicalID)
		if err != nil || !found {
			return err
		}
		if current.RemoteID != rejected.RemoteID {
			return nil
		}
		current.RemoteID = ""
		current.Synced = false
		return mapStoreError(s.observations.SaveObservation(ctx, current))
	})
}

func (s *clientSyncService) lookup(ctx context.Context, logicalID string) (models.Observation, bool, error) {
	o, err := s.observations.GetObservation(ctx, logicalID)
	if errors.Is(err, store.ErrObservationNotFound) {
		return models.Observation{}, false, nil
	}
	if err != nil {
		return models.Observation{}, false, mapStoreError(err)
	}
	return o, true, nil
}

func (s *clientSyncService) withRecordLock(fn func() error) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	return fn()
}

// changedSince reports whether a record differs from an earlier read of it:
// it appeared, disappeared, or got a new version or update time.
func changedSince(before models.Observation, existed bool, current models.Observation, found bool) bool {
	if existed != found {
		return true
	}
	if !found {
		return false
	}
	return before.Version != current.Version || !before.UpdatedAt.Equal(current.UpdatedAt)
}

// Refresh implements ClientSyncService.
func (s *clientSyncService) Refresh(ctx context.Context) error {
	return s.refreshSnapshot(ctx, nil)
}

func (s *clientSyncService) refreshSnapshot(ctx context.Context, report *models.SyncReport) error {
	records, err := s.observations.GetAllObservations(ctx)
	if err != nil {
		return mapStoreError(err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	s.snapMu.Lock()
	s.snapshot = records
	s.snapMu.Unlock()

	if report != nil {
		report.Total = len(records)
		report.Pending = 0
		for _, o := range records {
			if !o.Synced {
				report.Pending++
			}
		}
	}
	return nil
}

// Snapshot implements ClientSyncService.
func (s *clientSyncService) Snapshot() []models.Observation {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()

	out := make([]models.Observation, len(s.snapshot))
	for i, o := range s.snapshot {
		out[i] = o.Clone()
	}
	return out
}

// LastReport implements ClientSyncService.
func (s *clientSyncService) LastReport() models.SyncReport {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.report
}

// Trigger implements ClientSyncService.
func (s *clientSyncService) Trigger(ctx context.Context) models.TriggerOutcome {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	switch {
	case !s.running:
		s.running = true
		s.idle = make(chan struct{})
		go s.drain(context.WithoutCancel(ctx), s.idle)
		return models.TriggerStarted
	case !s.queued:
		s.queued = true
		return models.TriggerQueued
	default:
		return models.TriggerDropped
	}
}

// drain runs passes until no trigger is queued, then closes idle.
func (s *clientSyncService) drain(ctx context.Context, idle chan struct{}) {
	for {
		if _, err := s.RunSyncPass(ctx); err != nil {
			s.logger.Err(err).Str("func", "clientSyncService.drain").Msg("background sync pass failed")
		}

		s.stateMu.Lock()
		if !s.queued {
			s.running = false
			close(idle)
			s.stateMu.Unlock()
			return
		}
		s.queued = false
		s.stateMu.Unlock()
	}
}

// WaitIdle implements ClientSyncService.
func (s *clientSyncService) WaitIdle(ctx context.Context) error {
	s.stateMu.Lock()
	running, idle := s.running, s.idle
	s.stateMu.Unlock()

	if !running {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncNow implements ClientSyncService.
func (s *clientSyncService) SyncNow(ctx context.Context) (models.SyncReport, error) {
	outcome := s.Trigger(ctx)
	s.logger.Debug().Str("func", "clientSyncService.SyncNow").
		Stringer("outcome", outcome).
		Msg("manual sync requested")

	if err := s.WaitIdle(ctx); err != nil {
		return models.SyncReport{}, err
	}

	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.report, s.passErr
}

// Online implements ClientSyncService.
func (s *clientSyncService) Online(ctx context.Context) bool {
	return s.probe.Reachable(ctx)
}

// MigrateLegacyIDs implements ClientSyncService.
func (s *clientSyncService) MigrateLegacyIDs(ctx context.Context) (models.MigrationReport, error) {
	if !s.probe.Reachable(ctx) {
		return models.MigrationReport{}, ErrRemoteUnavailable
	}

	res, err := s.remote.MigrateLegacyIDs(ctx)
	if err != nil {
		return models.MigrationReport{}, fmt.Errorf("migrate legacy ids: %w", mapAdapterError(err))
	}

	s.Trigger(ctx)
	return res, nil
}
