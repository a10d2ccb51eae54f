package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
)

// ClientStorages groups all client-side repositories into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// Observations is the local observation store.
	Observations LocalObservationRepository
	// Deletions is the queue of remote deletions awaiting connectivity.
	Deletions PendingDeletionRepository

	closer io.Closer
}

// NewClientStorages opens the storage engine selected by cfg.Driver:
//   - [config.DriverSQLite] opens the SQLite file at cfg.DB.DSN and applies
//     the embedded migrations;
//   - [config.DriverBolt] opens the bbolt file at cfg.Bolt.Path.
//
// Close must be called to release the underlying file.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := NewConnectSQLite(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return &ClientStorages{
			Observations: NewLocalObservationRepository(db, logger),
			Deletions:    NewPendingDeletionRepository(db, logger),
			closer:       db,
		}, nil

	case config.DriverBolt:
		db, err := NewConnectBolt(ctx, cfg.Bolt, logger)
		if err != nil {
			return nil, fmt.Errorf("bolt connection error: %w", err)
		}
		return &ClientStorages{
			Observations: NewBoltObservationRepository(db),
			Deletions:    NewBoltPendingDeletionRepository(db),
			closer:       db,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// Close releases the storage engine.
func (s *ClientStorages) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
