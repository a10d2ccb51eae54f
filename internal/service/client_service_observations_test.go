package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/MKhiriev/go-field-survey/internal/adapter"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/mock"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/internal/utils"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type observationFixture struct {
	remote   *mock.MockRemoteStore
	probe    *mock.MockConnectivityProbe
	storages *store.ClientStorages
	spy      *spySyncService
	clock    *utils.MockClock
	svc      ClientObservationService
}

func newObservationFixture(t *testing.T) *observationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &observationFixture{
		remote:   mock.NewMockRemoteStore(ctrl),
		probe:    mock.NewMockConnectivityProbe(ctrl),
		storages: newTestStorages(t),
		spy:      &spySyncService{},
		clock:    utils.NewMockClock(testNow),
	}
	f.svc = NewClientObservationService(f.storages, f.remote, f.probe, f.spy,
		NewIdentityNormalizer(f.clock), &sync.Mutex{}, logger.Nop())
	return f
}

// ── Create ──

func TestCreate_StoresTemporaryRecord(t *testing.T) {
	f := newObservationFixture(t)

	o, err := f.svc.Create(context.Background(), models.Payload{"lieustation": "Gare", "nbpassagers": 12.0})
	require.NoError(t, err)

	assert.True(t, IsTemporaryID(o.LogicalID))
	assert.Empty(t, o.RemoteID)
	assert.EqualValues(t, 1, o.Version)
	assert.False(t, o.Synced)
	assert.True(t, o.CreatedAt.Equal(testNow))
	assert.True(t, o.UpdatedAt.Equal(testNow))

	assert.Equal(t, "Gare", stored(t, f.storages, o.LogicalID).Payload["lieustation"])
	assert.EqualValues(t, 1, f.spy.refresh.Load())
	assert.EqualValues(t, 1, f.spy.triggers.Load())
}

func TestCreate_RejectsReservedPayloadKey(t *testing.T) {
	f := newObservationFixture(t)

	_, err := f.svc.Create(context.Background(), models.Payload{"_id": "x"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Empty(t, storedAll(t, f.storages))
	assert.Zero(t, f.spy.triggers.Load())
}

func TestCreate_LocalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockLocalObservationRepository(ctrl)
	repo.EXPECT().SaveObservation(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))

	svc := NewClientObservationService(&store.ClientStorages{Observations: repo}, nil, nil, &spySyncService{},
		newTestNormalizer(), &sync.Mutex{}, logger.Nop())

	_, err := svc.Create(context.Background(), models.Payload{"a": "b"})
	assert.ErrorIs(t, err, ErrLocalPersistence)
}

// ── Update ──

func TestUpdate_BumpsVersionAndMarksUnsynced(t *testing.T) {
	f := newObservationFixture(t)
	seed(t, f.storages, syncedRecord(canonicalA, 3, t0))
	f.clock.SetNow(t2)

	o, err := f.svc.Update(context.Background(), canonicalA, models.Payload{"lieustation": "Port"})
	require.NoError(t, err)

	assert.EqualValues(t, 4, o.Version)
	assert.False(t, o.Synced)
	assert.True(t, o.UpdatedAt.Equal(t2))
	assert.True(t, o.CreatedAt.Equal(t0))
	assert.Equal(t, canonicalA, o.RemoteID)
	assert.Equal(t, o, stored(t, f.storages, canonicalA))
	assert.EqualValues(t, 1, f.spy.triggers.Load())
}

func TestUpdate_ByRemoteID(t *testing.T) {
	f := newObservationFixture(t)
	rec := syncedRecord(canonicalA, 1, t0)
	rec.LogicalID = "temp-1"
	seed(t, f.storages, rec)

	o, err := f.svc.Update(context.Background(), canonicalA, models.Payload{"lieustation": "Port"})
	require.NoError(t, err)
	assert.Equal(t, "temp-1", o.LogicalID)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newObservationFixture(t)

	_, err := f.svc.Update(context.Background(), "temp-404", models.Payload{})
	assert.ErrorIs(t, err, ErrObservationNotFound)
	assert.Zero(t, f.spy.triggers.Load())
}

// ── Delete ──

func TestDelete_NeverPushedStaysLocal(t *testing.T) {
	f := newObservationFixture(t)
	seed(t, f.storages, tempRecord("temp-1"))

	require.NoError(t, f.svc.Delete(context.Background(), "temp-1"))

	assert.Empty(t, storedAll(t, f.storages))
	assert.Empty(t, pendingDeletions(t, f.storages))
	assert.EqualValues(t, 1, f.spy.triggers.Load())
}

func TestDelete_Online(t *testing.T) {
	tests := []struct {
		name      string
		remoteErr error
		wantQueue []string
	}{
		{"deleted remotely", nil, []string{}},
		{"already gone remotely", fmt.Errorf("%w: missing", adapter.ErrNotFound), []string{}},
		{"remote failure is queued", fmt.Errorf("%w: down", adapter.ErrServiceUnavailable), []string{canonicalA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newObservationFixture(t)
			seed(t, f.storages, syncedRecord(canonicalA, 1, t0))
			f.probe.EXPECT().Reachable(gomock.Any()).Return(true)
			f.remote.EXPECT().DeleteObservation(gomock.Any(), canonicalA).Return(tt.remoteErr)

			require.NoError(t, f.svc.Delete(context.Background(), canonicalA))

			assert.Empty(t, storedAll(t, f.storages))
			assert.ElementsMatch(t, tt.wantQueue, pendingDeletions(t, f.storages))
		})
	}
}

func TestDelete_OfflineQueues(t *testing.T) {
	f := newObservationFixture(t)
	rec := syncedRecord(canonicalA, 1, t0)
	rec.LogicalID = "temp-1"
	seed(t, f.storages, rec)
	f.probe.EXPECT().Reachable(gomock.Any()).Return(false)

	require.NoError(t, f.svc.Delete(context.Background(), "temp-1"))

	assert.Empty(t, storedAll(t, f.storages))
	assert.Equal(t, []string{canonicalA}, pendingDeletions(t, f.storages))
}

func TestDelete_NotFound(t *testing.T) {
	f := newObservationFixture(t)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "nope"), ErrObservationNotFound)
}

// ── Get / List ──

func TestGet(t *testing.T) {
	f := newObservationFixture(t)
	rec := syncedRecord(canonicalA, 1, t0)
	rec.LogicalID = "1"
	seed(t, f.storages, rec)
	ctx := context.Background()

	byLogical, err := f.svc.Get(ctx, "1")
	require.NoError(t, err)
	byRemote, err := f.svc.Get(ctx, " "+canonicalA+" ")
	require.NoError(t, err)
	assert.Equal(t, byLogical, byRemote)

	_, err = f.svc.Get(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = f.svc.Get(ctx, canonicalB)
	assert.ErrorIs(t, err, ErrObservationNotFound)
}

func TestList_FiltersBySearchAndPending(t *testing.T) {
	f := newObservationFixture(t)
	gare := tempRecord("temp-1")
	gare.Payload = models.Payload{"lieustation": "Gare Centrale", "jour": "Lundi"}
	port := syncedRecord(canonicalA, 1, t1)
	port.Payload = models.Payload{"lieustation": "Port", "impressionsgenerales": "Très calme", "date": "2025-04-02"}
	other := syncedRecord(canonicalB, 1, t0)
	other.Payload = models.Payload{"notes": "gare"}
	seed(t, f.storages, gare, port, other)
	ctx := context.Background()

	ids := func(filter models.ObservationFilter) []string {
		list, err := f.svc.List(ctx, filter)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, o := range list {
			out = append(out, o.LogicalID)
		}
		return out
	}

	assert.Len(t, ids(models.ObservationFilter{}), 3)
	assert.Equal(t, []string{"temp-1"}, ids(models.ObservationFilter{Search: "  GARE "}))
	assert.Equal(t, []string{canonicalA}, ids(models.ObservationFilter{Search: "calme"}))
	assert.Equal(t, []string{canonicalA}, ids(models.ObservationFilter{Search: "2025-04"}))
	assert.Equal(t, []string{"temp-1"}, ids(models.ObservationFilter{Search: "lundi"}))
	assert.Equal(t, []string{"temp-1"}, ids(models.ObservationFilter{PendingOnly: true}))
	assert.Empty(t, ids(models.ObservationFilter{PendingOnly: true, Search: "port"}))
}

// ── SyncOne ──

func TestSyncOne_ReturnsPostPassState(t *testing.T) {
	f := newObservationFixture(t)
	seed(t, f.storages, tempRecord("temp-1"))
	f.spy.report = models.SyncReport{FinalPhase: models.PhaseIdle, Created: 1}
	f.spy.onPass = func() {
		o := tempRecord("temp-1")
		o.RemoteID = canonicalA
		o.Synced = true
		require.NoError(t, f.storages.Observations.SaveObservation(context.Background(), o))
	}

	o, report, err := f.svc.SyncOne(context.Background(), "temp-1")
	require.NoError(t, err)

	assert.Equal(t, canonicalA, o.RemoteID)
	assert.True(t, o.Synced)
	assert.Equal(t, 1, report.Created)
	assert.EqualValues(t, 1, f.spy.passes.Load())
	assert.EqualValues(t, 1, f.spy.triggers.Load())
}

func TestSyncOne_PassFailure(t *testing.T) {
	f := newObservationFixture(t)
	seed(t, f.storages, tempRecord("temp-1"))
	f.spy.passErr = ErrLocalPersistence

	_, _, err := f.svc.SyncOne(context.Background(), "temp-1")
	assert.ErrorIs(t, err, ErrLocalPersistence)
}

func TestSyncOne_NotFound(t *testing.T) {
	f := newObservationFixture(t)

	_, _, err := f.svc.SyncOne(context.Background(), "temp-1")
	assert.ErrorIs(t, err, ErrObservationNotFound)
	assert.Zero(t, f.spy.passes.Load())
}
