package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"go.etcd.io/bbolt"
)

type boltPendingDeletionRepository struct {
	*BoltDB
}

// NewBoltPendingDeletionRepository returns the bbolt-backed deletion queue.
// Each remote id maps to the bucket sequence number it was enqueued with.
func NewBoltPendingDeletionRepository(db *BoltDB) PendingDeletionRepository {
	return &boltPendingDeletionRepository{BoltDB: db}
}

func (r *boltPendingDeletionRepository) EnqueueDeletion(ctx context.Context, remoteID string) error {
	if remoteID == "" {
		return ErrEmptyKey
	}

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketPendingDeletions)
		if err != nil {
			return err
		}
		if bucket.Get([]byte(remoteID)) != nil {
			return nil
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put([]byte(remoteID), binary.BigEndian.AppendUint64(nil, seq))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "boltPendingDeletionRepository.EnqueueDeletion").
			Str("remote_id", remoteID).
			Msg("failed to enqueue deletion")
		return fmt.Errorf("%w: enqueue deletion (remote_id=%s): %w", ErrExecutingStatement, remoteID, err)
	}

	return nil
}

func (r *boltPendingDeletionRepository) PendingDeletions(ctx context.Context) ([]string, error) {
	type entry struct {
		id  string
		seq uint64
	}
	var entries []entry

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketPendingDeletions)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(k, v []byte) error {
			var seq uint64
			if len(v) == 8 {
				seq = binary.BigEndian.Uint64(v)
			}
			entries = append(entries, entry{id: string(k), seq: seq})
			return nil
		})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "boltPendingDeletionRepository.PendingDeletions").
			Msg("failed to read pending deletions")
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	return ids, nil
}

func (r *boltPendingDeletionRepository) RemoveDeletion(ctx context.Context, remoteID string) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketPendingDeletions)
		if err != nil {
			return err
		}
		return bucket.Delete([]byte(remoteID))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "boltPendingDeletionRepository.RemoveDeletion").
			Str("remote_id", remoteID).
			Msg("failed to remove pending deletion")
		return fmt.Errorf("%w: remove deletion (remote_id=%s): %w", ErrExecutingStatement, remoteID, err)
	}
	return nil
}
