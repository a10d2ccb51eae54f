package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"go.etcd.io/bbolt"
)

var (
	bucketObservations     = []byte("observations")
	bucketPendingDeletions = []byte("pending_deletions")
)

// BoltDB wraps the embedded bbolt file used by the key-value repositories.
type BoltDB struct {
	db     *bbolt.DB
	logger *logger.Logger
}

// NewConnectBolt opens (or creates) the bbolt file described by cfg and makes
// sure every bucket exists.
func NewConnectBolt(ctx context.Context, cfg config.ClientBolt, log *logger.Logger) (*BoltDB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Err(err).Str("func", "NewConnectBolt").Msg("error creating database dir")
			return nil, fmt.Errorf("error creating bolt dir: %w", err)
		}
	}

	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewConnectBolt").Msg("error opening bolt database")
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	b := &BoltDB{db: db, logger: log}
	if err := b.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	log.Debug().Str("func", "NewConnectBolt").Str("path", cfg.Path).Msg("opened bolt database successfully")

	return b, nil
}

// Close closes the underlying file.
func (b *BoltDB) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *BoltDB) initBuckets() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketObservations, bucketPendingDeletions} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func bucketOf(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(name)
	if bucket == nil {
		return nil, fmt.Errorf("%s bucket not found", name)
	}
	return bucket, nil
}
