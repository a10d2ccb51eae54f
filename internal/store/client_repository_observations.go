package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/models"
)

// timestamps are stored as fixed-width RFC 3339 text so that lexical order in
// SQLite matches chronological order.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type localObservationRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalObservationRepository returns the SQLite-backed observation store.
func NewLocalObservationRepository(db *DB, logger *logger.Logger) LocalObservationRepository {
	return &localObservationRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localObservationRepository) SaveObservation(ctx context.Context, o models.Observation) error {
	log := logger.FromContext(ctx)

	if o.LogicalID == "" {
		return ErrEmptyKey
	}

	_, err := l.DB.ExecContext(ctx, saveObservation,
		o.LogicalID,
		nullString(o.RemoteID),
		formatSQLTime(o.CreatedAt),
		formatSQLTime(o.UpdatedAt),
		o.Version,
		o.Synced,
		o.Payload,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localObservationRepository.SaveObservation").
			Str("logical_id", o.LogicalID).
			Msg("failed to execute upsert for observation")
		return fmt.Errorf("%w: save observation (logical_id=%s): %w", ErrExecutingStatement, o.LogicalID, err)
	}

	return nil
}

func (l *localObservationRepository) GetObservation(ctx context.Context, logicalID string) (models.Observation, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getObservation, logicalID)
	item, err := scanObservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Observation{}, ErrObservationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localObservationRepository.GetObservation").
			Str("logical_id", logicalID).
			Msg("failed to scan observation row")
		return models.Observation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (l *localObservationRepository) GetAllObservations(ctx context.Context) ([]models.Observation, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getAllObservations)
	if err != nil {
		log.Err(err).
			Str("func", "localObservationRepository.GetAllObservations").
			Msg("failed to execute query for getting all observations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Observation, 0)
	for rows.Next() {
		item, scanErr := scanObservation(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localObservationRepository.GetAllObservations").
				Msg("failed to scan observation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localObservationRepository.GetAllObservations").
			Msg("error iterating observation rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr)
	}

	return items, nil
}

func (l *localObservationRepository) DeleteObservation(ctx context.Context, logicalID string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, deleteObservation, logicalID); err != nil {
		log.Err(err).
			Str("func", "localObservationRepository.DeleteObservation").
			Str("logical_id", logicalID).
			Msg("failed to delete observation")
		return fmt.Errorf("%w: delete observation (logical_id=%s): %w", ErrExecutingStatement, logicalID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObservation(row rowScanner) (models.Observation, error) {
	var (
		item                 models.Observation
		remoteID             sql.NullString
		createdAt, updatedAt string
	)

	if err := row.Scan(
		&item.LogicalID,
		&remoteID,
		&createdAt,
		&updatedAt,
		&item.Version,
		&item.Synced,
		&item.Payload,
	); err != nil {
		return models.Observation{}, err
	}

	var err error
	if item.CreatedAt, err = parseSQLTime(createdAt); err != nil {
		return models.Observation{}, fmt.Errorf("created_at: %w", err)
	}
	if item.UpdatedAt, err = parseSQLTime(updatedAt); err != nil {
		return models.Observation{}, fmt.Errorf("updated_at: %w", err)
	}
	item.RemoteID = remoteID.String

	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatSQLTime(t time.Time) string {
	return t.UTC().Format(sqlTimeLayout)
}

func parseSQLTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
