package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/logger"
)

type pendingDeletionRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewPendingDeletionRepository returns the SQLite-backed deletion queue.
func NewPendingDeletionRepository(db *DB, logger *logger.Logger) PendingDeletionRepository {
	return &pendingDeletionRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (p *pendingDeletionRepository) EnqueueDeletion(ctx context.Context, remoteID string) error {
	log := logger.FromContext(ctx)

	if remoteID == "" {
		return ErrEmptyKey
	}

	if _, err := p.DB.ExecContext(ctx, enqueueDeletion, remoteID, formatSQLTime(p.now())); err != nil {
		log.Err(err).
			Str("func", "pendingDeletionRepository.EnqueueDeletion").
			Str("remote_id", remoteID).
			Msg("failed to enqueue deletion")
		return fmt.Errorf("%w: enqueue deletion (remote_id=%s): %w", ErrExecutingStatement, remoteID, err)
	}

	return nil
}

func (p *pendingDeletionRepository) PendingDeletions(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getPendingDeletions)
	if err != nil {
		log.Err(err).
			Str("func", "pendingDeletionRepository.PendingDeletions").
			Msg("failed to query pending deletions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Err(err).
				Str("func", "pendingDeletionRepository.PendingDeletions").
				Msg("failed to scan pending deletion row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ids, nil
}

func (p *pendingDeletionRepository) RemoveDeletion(ctx context.Context, remoteID string) error {
	log := logger.FromContext(ctx)

	if _, err := p.DB.ExecContext(ctx, removeDeletion, remoteID); err != nil {
		log.Err(err).
			Str("func", "pendingDeletionRepository.RemoveDeletion").
			Str("remote_id", remoteID).
			Msg("failed to remove pending deletion")
		return fmt.Errorf("%w: remove deletion (remote_id=%s): %w", ErrExecutingStatement, remoteID, err)
	}

	return nil
}
