package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/models"
	"go.etcd.io/bbolt"
)

type boltObservationRepository struct {
	*BoltDB
}

// NewBoltObservationRepository returns the bbolt-backed observation store.
// Records are kept as JSON envelopes keyed by logical id.
func NewBoltObservationRepository(db *BoltDB) LocalObservationRepository {
	return &boltObservationRepository{BoltDB: db}
}

func (r *boltObservationRepository) SaveObservation(ctx context.Context, o models.Observation) error {
	log := logger.FromContext(ctx)

	if o.LogicalID == "" {
		return ErrEmptyKey
	}

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketObservations)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(o.LogicalID), data)
	})
	if err != nil {
		log.Err(err).
			Str("func", "boltObservationRepository.SaveObservation").
			Str("logical_id", o.LogicalID).
			Msg("failed to save observation")
		return fmt.Errorf("%w: save observation (logical_id=%s): %w", ErrExecutingStatement, o.LogicalID, err)
	}

	return nil
}

func (r *boltObservationRepository) GetObservation(ctx context.Context, logicalID string) (models.Observation, error) {
	var (
		item  models.Observation
		found bool
	)

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketObservations)
		if err != nil {
			return err
		}
		data := bucket.Get([]byte(logicalID))
		if data == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "boltObservationRepository.GetObservation").
			Str("logical_id", logicalID).
			Msg("failed to read observation")
		return models.Observation{}, err
	}
	if !found {
		return models.Observation{}, ErrObservationNotFound
	}

	return item, nil
}

func (r *boltObservationRepository) GetAllObservations(ctx context.Context) ([]models.Observation, error) {
	items := make([]models.Observation, 0)

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketObservations)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(k, v []byte) error {
			var item models.Observation
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("%w: key %s: %w", ErrEncodingRecord, k, err)
			}
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "boltObservationRepository.GetAllObservations").
			Msg("failed to read observations")
		return nil, err
	}

	// same order as the SQL store: newest first, logical id as tie-breaker
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].LogicalID < items[j].LogicalID
	})

	return items, nil
}

func (r *boltObservationRepository) DeleteObservation(ctx context.Context, logicalID string) error {
	if logicalID == "" {
		return nil
	}

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketObservations)
		if err != nil {
			return err
		}
		return bucket.Delete([]byte(logicalID))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "boltObservationRepository.DeleteObservation").
			Str("logical_id", logicalID).
			Msg("failed to delete observation")
		return fmt.Errorf("%w: delete observation (logical_id=%s): %w", ErrExecutingStatement, logicalID, err)
	}

	return nil
}
