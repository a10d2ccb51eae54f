package service

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/stretchr/testify/require"
)

// newTestStorages opens a bbolt store in a temp dir.
func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		Driver: config.DriverBolt,
		Bolt:   config.ClientBolt{Path: filepath.Join(t.TempDir(), "survey.bolt")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

func seed(t *testing.T, storages *store.ClientStorages, records ...models.Observation) {
	t.Helper()
	for _, o := range records {
		require.NoError(t, storages.Observations.SaveObservation(context.Background(), o))
	}
}

func stored(t *testing.T, storages *store.ClientStorages, logicalID string) models.Observation {
	t.Helper()
	o, err := storages.Observations.GetObservation(context.Background(), logicalID)
	require.NoError(t, err)
	return o
}

func storedAll(t *testing.T, storages *store.ClientStorages) []models.Observation {
	t.Helper()
	all, err := storages.Observations.GetAllObservations(context.Background())
	require.NoError(t, err)
	return all
}

func pendingDeletions(t *testing.T, storages *store.ClientStorages) []string {
	t.Helper()
	ids, err := storages.Deletions.PendingDeletions(context.Background())
	require.NoError(t, err)
	return ids
}

// spySyncService records calls made by services that trigger sync.
type spySyncService struct {
	mu       sync.Mutex
	triggers atomic.Int64
	refresh  atomic.Int64
	passes   atomic.Int64

	report  models.SyncReport
	passErr error
	onPass  func()
}

func (s *spySyncService) RunSyncPass(context.Context) (models.SyncReport, error) {
	s.passes.Add(1)
	s.mu.Lock()
	onPass, report, err := s.onPass, s.report, s.passErr
	s.mu.Unlock()
	if onPass != nil {
		onPass()
	}
	return report, err
}

func (s *spySyncService) Trigger(context.Context) models.TriggerOutcome {
	s.triggers.Add(1)
	return models.TriggerStarted
}

func (s *spySyncService) WaitIdle(context.Context) error { return nil }

func (s *spySyncService) SyncNow(ctx context.Context) (models.SyncReport, error) {
	s.triggers.Add(1)
	return s.RunSyncPass(ctx)
}

func (s *spySyncService) Refresh(context.Context) error {
	s.refresh.Add(1)
	return nil
}

func (s *spySyncService) Snapshot() []models.Observation { return nil }

func (s *spySyncService) LastReport() models.SyncReport { return models.SyncReport{} }

func (s *spySyncService) Online(context.Context) bool { return true }

func (s *spySyncService) MigrateLegacyIDs(context.Context) (models.MigrationReport, error) {
	return models.MigrationReport{}, nil
}
