package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/mock"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTransferService(t *testing.T) (ClientTransferService, *store.ClientStorages, *spySyncService) {
	t.Helper()
	storages := newTestStorages(t)
	spy := &spySyncService{}
	svc := NewClientTransferService(storages, spy, newTestNormalizer(), &sync.Mutex{}, logger.Nop())
	return svc, storages, spy
}

// ── file names ──

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "tramway-observations-2025-05-01-3obs.json", ExportFileName(testNow, 3))
}

func TestObservationFileName(t *testing.T) {
	tests := []struct {
		name    string
		payload models.Payload
		want    string
	}{
		{"station and date", models.Payload{"lieustation": "Gare du Nord", "date": "2025-04-02"}, "observation-Gare-du-Nord-2025-04-02.json"},
		{"slashes", models.Payload{"lieustation": "A/B\\C", "date": "02/04/2025"}, "observation-A-B-C-02-04-2025.json"},
		{"missing station", models.Payload{"date": "2025-04-02"}, "observation-sans-nom-2025-04-02.json"},
		{"missing date", models.Payload{"lieustation": "Port"}, "observation-Port-2025-05-01.json"},
		{"blank values", models.Payload{"lieustation": "  ", "date": 12.0}, "observation-sans-nom-2025-05-01.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := models.Observation{Payload: tt.payload}
			assert.Equal(t, tt.want, ObservationFileName(o, testNow))
		})
	}
}

// ── export ──

func TestExport_WritesEnvelopes(t *testing.T) {
	svc, storages, _ := newTransferService(t)
	seed(t, storages, tempRecord("temp-1"), syncedRecord(canonicalA, 2, t1))

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var out []models.Observation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Contains(t, buf.String(), "\n  {")
}

func TestExport_Empty(t *testing.T) {
	svc, _, _ := newTransferService(t)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestExportOne(t *testing.T) {
	svc, storages, _ := newTransferService(t)
	rec := syncedRecord(canonicalA, 2, t1)
	rec.LogicalID = "temp-1"
	seed(t, storages, rec)

	var buf bytes.Buffer
	o, err := svc.ExportOne(context.Background(), canonicalA, &buf)
	require.NoError(t, err)
	assert.Equal(t, "temp-1", o.LogicalID)

	var decoded models.Observation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "temp-1", decoded.LogicalID)
	assert.Equal(t, canonicalA, decoded.RemoteID)

	_, err = svc.ExportOne(context.Background(), "missing", &buf)
	assert.ErrorIs(t, err, ErrObservationNotFound)
}

// ── import ──

func TestExportImport_RoundTrip(t *testing.T) {
	src, srcStorages, _ := newTransferService(t)
	seed(t, srcStorages,
		tempRecord("temp-1"),
		syncedRecord(canonicalA, 2, t1),
		models.Observation{LogicalID: "12", CreatedAt: t0, UpdatedAt: t2, Version: 5,
			Payload: models.Payload{"lignes": []any{"T1", "T2"}, "rows": []any{map[string]any{"n": 1.0}}}},
	)

	var buf bytes.Buffer
	_, err := src.Export(context.Background(), &buf)
	require.NoError(t, err)

	dst, dstStorages, spy := newTransferService(t)
	report, err := dst.Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Imported)
	assert.Empty(t, report.Rejected)
	assert.EqualValues(t, 1, spy.triggers.Load())
	assert.EqualValues(t, 1, spy.refresh.Load())

	key := func(all []models.Observation) map[string]models.Payload {
		out := make(map[string]models.Payload)
		for _, o := range all {
			out[o.LogicalID] = o.Payload
		}
		return out
	}
	imported := storedAll(t, dstStorages)
	assert.Equal(t, key(storedAll(t, srcStorages)), key(imported))
	for _, o := range imported {
		assert.False(t, o.Synced, o.LogicalID)
	}
	assert.ElementsMatch(t, []string{"temp-1", canonicalA, "12"}, report.LogicalIDs)
}

func TestImport_LegacyFlatDocuments(t *testing.T) {
	svc, storages, _ := newTransferService(t)
	input := `[
		{"id": 12, "lieuStation": "Gare", "created_at": "2024-01-01T00:00:00.000Z", "version": 2},
		{"_id": {"$oid": "` + canonicalA + `"}, "id": "7", "updated_at": "2024-01-02T00:00:00Z"},
		{"_id": "` + canonicalB + `", "synced": true},
		{"lieustation": "Sans identifiant"}
	]`

	report, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Imported)

	legacy := stored(t, storages, "12")
	assert.Empty(t, legacy.RemoteID)
	assert.EqualValues(t, 2, legacy.Version)
	assert.Equal(t, "Gare", legacy.Payload["lieuStation"])
	assert.True(t, legacy.CreatedAt.Equal(t0))
	assert.True(t, legacy.UpdatedAt.Equal(t0))

	aliased := stored(t, storages, "7")
	assert.Equal(t, canonicalA, aliased.RemoteID)
	assert.False(t, aliased.Synced)

	canonical := stored(t, storages, canonicalB)
	assert.False(t, canonical.Synced)

	require.Len(t, report.LogicalIDs, 4)
	assert.True(t, IsTemporaryID(report.LogicalIDs[3]))
	fresh := stored(t, storages, report.LogicalIDs[3])
	assert.EqualValues(t, 1, fresh.Version)
	assert.True(t, fresh.CreatedAt.Equal(testNow))
}

func TestImport_SingleObject(t *testing.T) {
	svc, storages, _ := newTransferService(t)

	report, err := svc.Import(context.Background(), strings.NewReader(`{"id":"temp-9","lieustation":"Port"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, "Port", stored(t, storages, "temp-9").Payload["lieustation"])
}

func TestImport_Malformed(t *testing.T) {
	for _, input := range []string{"", "   ", "not json", "42", `"text"`, "[1,", "{", "null"} {
		t.Run(input, func(t *testing.T) {
			svc, storages, spy := newTransferService(t)

			_, err := svc.Import(context.Background(), strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedImport)
			assert.Empty(t, storedAll(t, storages))
			assert.Zero(t, spy.triggers.Load())
		})
	}
}

func TestImport_RejectsRecordsIndividually(t *testing.T) {
	svc, storages, spy := newTransferService(t)
	input := `[
		1,
		{"id": "ok-1", "a": "b"},
		{"id": "bad-version", "version": -3},
		{"id": "bad-times", "created_at": "2024-02-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"},
		{"id": "bad-stamp", "created_at": "yesterday"},
		{"logicalId": "bad-key", "payload": {"_id": "x"}},
		null
	]`

	report, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	indexes := make([]int, 0, len(report.Rejected))
	for _, r := range report.Rejected {
		assert.NotEmpty(t, r.Reason)
		indexes = append(indexes, r.Index)
	}
	sort.Ints(indexes)
	assert.Equal(t, []int{0, 2, 3, 4, 5, 6}, indexes)
	assert.Len(t, storedAll(t, storages), 1)
	assert.EqualValues(t, 1, spy.triggers.Load())
}

func TestImport_NothingAcceptedDoesNotTrigger(t *testing.T) {
	svc, _, spy := newTransferService(t)

	report, err := svc.Import(context.Background(), strings.NewReader(`[1, 2]`))
	require.NoError(t, err)
	assert.Zero(t, report.Imported)
	assert.Len(t, report.Rejected, 2)
	assert.Zero(t, spy.triggers.Load())
}

func TestImport_MergesByRemoteID(t *testing.T) {
	svc, storages, _ := newTransferService(t)
	existing := syncedRecord(canonicalA, 5, t1)
	existing.LogicalID = "temp-1"
	seed(t, storages, existing)

	input := `{"_id": "` + canonicalA + `", "version": 2, "lieustation": "Importée", "updated_at": "2024-01-01T00:00:00Z"}`
	report, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"temp-1"}, report.LogicalIDs)

	all := storedAll(t, storages)
	require.Len(t, all, 1)
	o := all[0]
	assert.Equal(t, "temp-1", o.LogicalID)
	assert.Equal(t, canonicalA, o.RemoteID)
	assert.EqualValues(t, 5, o.Version)
	assert.Equal(t, "Importée", o.Payload["lieustation"])
	assert.True(t, o.CreatedAt.Equal(t0))
	assert.False(t, o.Synced)
}

func TestImport_EnvelopeKeepsMetadata(t *testing.T) {
	svc, storages, _ := newTransferService(t)
	input := `{"logicalId":"temp-3","remoteId":"` + canonicalC + `","createdAt":"2024-01-01T00:00:00Z",
		"updatedAt":"2024-01-01T02:00:00Z","version":4,"synced":true,"payload":{"lieustation":"Gare"}}`

	_, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	o := stored(t, storages, "temp-3")
	assert.Equal(t, canonicalC, o.RemoteID)
	assert.EqualValues(t, 4, o.Version)
	assert.True(t, o.UpdatedAt.Equal(t2))
	assert.False(t, o.Synced)
}

func TestImport_LocalFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockLocalObservationRepository(ctrl)
	spy := &spySyncService{}
	svc := NewClientTransferService(&store.ClientStorages{Observations: repo}, spy, newTestNormalizer(), &sync.Mutex{}, logger.Nop())

	repo.EXPECT().GetAllObservations(gomock.Any()).Return([]models.Observation{}, nil)
	repo.EXPECT().GetObservation(gomock.Any(), "a").Return(models.Observation{}, store.ErrObservationNotFound)
	repo.EXPECT().SaveObservation(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	report, err := svc.Import(context.Background(), strings.NewReader(`[{"id":"a"},{"id":"b"}]`))
	assert.ErrorIs(t, err, ErrLocalPersistence)
	assert.Zero(t, report.Imported)
	assert.Zero(t, spy.triggers.Load())
}
