package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-field-survey/internal/adapter"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/internal/validators"
	"github.com/MKhiriev/go-field-survey/models"
)

// searchableFields are the payload keys matched by a list search.
var searchableFields = []string{"lieustation", "date", "impressionsgenerales", "jour"}

type clientObservationService struct {
	observations store.LocalObservationRepository
	deletions    store.PendingDeletionRepository
	remote       adapter.RemoteStore
	probe        adapter.ConnectivityProbe
	sync         ClientSyncService
	normalizer   *IdentityNormalizer
	validator    validators.Validator
	locker       sync.Locker
	logger       *logger.Logger
}

// NewClientObservationService builds the record service. Mutations are
// serialized with the sync pass through locker.
func NewClientObservationService(
	storages *store.ClientStorages,
	remote adapter.RemoteStore,
	probe adapter.ConnectivityProbe,
	syncService ClientSyncService,
	normalizer *IdentityNormalizer,
	locker sync.Locker,
	logger *logger.Logger,
) ClientObservationService {
	return &clientObservationService{
		observations: storages.Observations,
		deletions:    storages.Deletions,
		remote:       remote,
		probe:        probe,
		sync:         syncService,
		normalizer:   normalizer,
		validator:    validators.NewObservationValidator(),
		locker:       locker,
		logger:       logger,
	}
}

func (c *clientObservationService) Create(ctx context.Context, payload models.Payload) (models.Observation, error) {
	if err := c.validator.Validate(ctx, payload); err != nil {
		return models.Observation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	o := c.normalizer.Normalize(models.Observation{
		LogicalID: c.normalizer.NewTemporaryID(),
		Version:   1,
		Payload:   payload.Clone(),
	})

	if err := c.observations.SaveObservation(ctx, o); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "clientObservationService.Create").
			Str("logical_id", o.LogicalID).
			Msg("failed to save new observation")
		return models.Observation{}, mapStoreError(err)
	}

	c.afterMutation(ctx)
	return o, nil
}

func (c *clientObservationService) Update(ctx context.Context, id string, payload models.Payload) (models.Observation, error) {
	if err := c.validator.Validate(ctx, payload); err != nil {
		return models.Observation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var updated models.Observation
	err := c.withRecordLock(func() error {
		current, err := c.find(ctx, id)
		if err != nil {
			return err
		}

		current.Payload = payload.Clone()
		current.Version++
		current.UpdatedAt = c.normalizer.Now()
		current.Synced = false
		updated = c.normalizer.Normalize(current)

		return mapStoreError(c.observations.SaveObservation(ctx, updated))
	})
	if err != nil {
		return models.Observation{}, err
	}

	c.afterMutation(ctx)
	return updated, nil
}

// Delete implements ClientObservationService. The remote call runs outside
// the record lock; only the local delete holds it.
func (c *clientObservationService) Delete(ctx context.Context, id string) error {
	target, err := c.find(ctx, id)
	if err != nil {
		return err
	}

	if IsCanonicalID(target.RemoteID) {
		if err := c.deleteRemote(ctx, target.RemoteID); err != nil {
			return err
		}
	}

	err = c.withRecordLock(func() error {
		current, err := c.observations.GetObservation(ctx, target.LogicalID)
		switch {
		case errors.Is(err, store.ErrObservationNotFound):
			return nil
		case err != nil:
			return mapStoreError(err)
		}
		// a pass adopted a remote id after the lookup above
		if IsCanonicalID(current.RemoteID) && current.RemoteID != target.RemoteID {
			if err := c.deletions.EnqueueDeletion(ctx, current.RemoteID); err != nil {
				return mapStoreError(err)
			}
		}
		return mapStoreError(c.observations.DeleteObservation(ctx, target.LogicalID))
	})
	if err != nil {
		return err
	}

	c.afterMutation(ctx)
	return nil
}

// deleteRemote deletes remoteID now when the remote API is reachable and
// queues it otherwise. A 404 counts as deleted.
func (c *clientObservationService) deleteRemote(ctx context.Context, remoteID string) error {
	log := logger.FromContext(ctx)

	if c.probe.Reachable(ctx) {
		err := c.remote.DeleteObservation(ctx, remoteID)
		if err == nil || errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		log.Warn().Err(err).
			Str("func", "clientObservationService.deleteRemote").
			Str("remote_id", remoteID).
			Msg("remote deletion failed, queued for next sync")
	}

	return mapStoreError(c.deletions.EnqueueDeletion(ctx, remoteID))
}

func (c *clientObservationService) Get(ctx context.Context, id string) (models.Observation, error) {
	return c.find(ctx, id)
}

func (c *clientObservationService) List(ctx context.Context, filter models.ObservationFilter) ([]models.Observation, error) {
	all, err := c.observations.GetAllObservations(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Observation, 0, len(all))
	for _, o := range all {
		if filter.PendingOnly && o.Synced {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func matchesSearch(o models.Observation, search string) bool {
	for _, key := range searchableFields {
		if v, ok := o.Payload[key]; ok && strings.Contains(strings.ToLower(fmt.Sprint(v)), search) {
			return true
		}
	}
	return false
}

func (c *clientObservationService) SyncOne(ctx context.Context, id string) (models.Observation, models.SyncReport, error) {
	target, err := c.find(ctx, id)
	if err != nil {
		return models.Observation{}, models.SyncReport{}, err
	}

	report, err := c.sync.SyncNow(ctx)
	if err != nil {
		return models.Observation{}, report, err
	}

	// the pass never re-keys a record, but it may have reclaimed it
	after, err := c.find(ctx, target.LogicalID)
	return after, report, err
}

// find resolves id as a logical id first, then as a remote id.
func (c *clientObservationService) find(ctx context.Context, id string) (models.Observation, error) {
	return findObservation(ctx, c.observations, id)
}

func findObservation(ctx context.Context, repo store.LocalObservationRepository, id string) (models.Observation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Observation{}, ErrEmptyID
	}

	o, err := repo.GetObservation(ctx, id)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, store.ErrObservationNotFound) {
		return models.Observation{}, mapStoreError(err)
	}

	all, err := repo.GetAllObservations(ctx)
	if err != nil {
		return models.Observation{}, mapStoreError(err)
	}
	for _, o := range all {
		if o.RemoteID == id {
			return o, nil
		}
	}
	return models.Observation{}, ErrObservationNotFound
}

func (c *clientObservationService) afterMutation(ctx context.Context) {
	if err := c.sync.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "clientObservationService.afterMutation").
			Msg("failed to refresh snapshot")
	}
	c.sync.Trigger(ctx)
}

func (c *clientObservationService) withRecordLock(fn func() error) error {
	c.locker.Lock()
	defer c.locker.Unlock()
	return fn()
}
