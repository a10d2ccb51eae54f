package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDocument_RemoteDocument(t *testing.T) {
	doc := map[string]any{
		"_id":         "a1b2c3d4e5f6a1b2c3d4e5f6",
		"created_at":  "2024-01-01T08:00:00.000Z",
		"updated_at":  "2024-01-02T09:30:00.000Z",
		"version":     float64(3),
		"lieustation": "Gare Centrale",
		"pourcentage": float64(40),
		"ambiance":    []any{"calme", "dense"},
	}

	o, err := FromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, "a1b2c3d4e5f6a1b2c3d4e5f6", o.RemoteID)
	assert.Empty(t, o.LogicalID)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), o.CreatedAt)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), o.UpdatedAt)
	assert.Equal(t, int64(3), o.Version)
	assert.Equal(t, Payload{
		"lieustation": "Gare Centrale",
		"pourcentage": float64(40),
		"ambiance":    []any{"calme", "dense"},
	}, o.Payload)
}

func TestFromDocument_Identifiers(t *testing.T) {
	tests := []struct {
		name       string
		doc        map[string]any
		wantRemote string
		wantLocal  string
	}{
		{
			name:       "extended json oid",
			doc:        map[string]any{"_id": map[string]any{"$oid": "a1b2c3d4e5f6a1b2c3d4e5f6"}},
			wantRemote: "a1b2c3d4e5f6a1b2c3d4e5f6",
		},
		{
			name:       "legacy id only",
			doc:        map[string]any{"id": "temp-1700000000000-abc123def"},
			wantRemote: "temp-1700000000000-abc123def",
		},
		{
			name:       "legacy numeric id",
			doc:        map[string]any{"id": float64(1700000000000)},
			wantRemote: "1700000000000",
		},
		{
			name:       "both ids",
			doc:        map[string]any{"_id": "a1b2c3d4e5f6a1b2c3d4e5f6", "id": "temp-1"},
			wantRemote: "a1b2c3d4e5f6a1b2c3d4e5f6",
			wantLocal:  "temp-1",
		},
		{
			name:       "aliased ids",
			doc:        map[string]any{"_id": "a1b2c3d4e5f6a1b2c3d4e5f6", "id": "a1b2c3d4e5f6a1b2c3d4e5f6"},
			wantRemote: "a1b2c3d4e5f6a1b2c3d4e5f6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := FromDocument(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemote, o.RemoteID)
			assert.Equal(t, tt.wantLocal, o.LogicalID)
		})
	}
}

func TestFromDocument_LegacyTimestampKeys(t *testing.T) {
	o, err := FromDocument(map[string]any{
		"createdat": "2024-03-01T10:00:00Z",
		"updatedat": float64(1709290800000),
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), o.CreatedAt)
	assert.Equal(t, time.UnixMilli(1709290800000).UTC(), o.UpdatedAt)
	assert.Empty(t, o.Payload)
}

func TestFromDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{"bad timestamp", map[string]any{"created_at": "yesterday"}},
		{"bad version", map[string]any{"version": "three"}},
		{"bad id", map[string]any{"_id": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDocument(tt.doc)
			assert.Error(t, err)
		})
	}
}

func TestObservation_ToDocument(t *testing.T) {
	o := Observation{
		LogicalID: "temp-1",
		RemoteID:  "a1b2c3d4e5f6a1b2c3d4e5f6",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Version:   2,
		Synced:    true,
		Payload:   Payload{"lieustation": "Nation", "_id": "shadow"},
	}

	doc := o.ToDocument()

	assert.Equal(t, map[string]any{
		"lieustation": "Nation",
		"created_at":  "2024-01-01T00:00:00Z",
		"updated_at":  "2024-01-01T00:00:00Z",
		"version":     int64(2),
	}, doc)
}
