package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientStorages_Drivers(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.ClientStorage
	}{
		{
			name: "sqlite",
			cfg:  config.ClientStorage{Driver: config.DriverSQLite, DB: config.ClientDB{DSN: filepath.Join(dir, "db", "survey.db")}},
		},
		{
			name: "bolt",
			cfg:  config.ClientStorage{Driver: config.DriverBolt, Bolt: config.ClientBolt{Path: filepath.Join(dir, "survey.bolt")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			s, err := NewClientStorages(ctx, tt.cfg, logger.Nop())
			require.NoError(t, err)
			defer func() { require.NoError(t, s.Close()) }()

			ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
			o := models.Observation{
				LogicalID: "temp-1", CreatedAt: ts, UpdatedAt: ts, Version: 1,
				Payload: models.Payload{"observations": []any{map[string]any{"espece": "pigeon"}}},
			}
			require.NoError(t, s.Observations.SaveObservation(ctx, o))

			got, err := s.Observations.GetObservation(ctx, "temp-1")
			require.NoError(t, err)
			assert.True(t, ts.Equal(got.CreatedAt))
			assert.Len(t, got.Payload["observations"], 1)

			require.NoError(t, s.Deletions.EnqueueDeletion(ctx, "a1b2c3d4e5f6a1b2c3d4e5f6"))
			ids, err := s.Deletions.PendingDeletions(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a1b2c3d4e5f6a1b2c3d4e5f6"}, ids)
		})
	}
}

func TestNewClientStorages_UnknownDriver(t *testing.T) {
	_, err := NewClientStorages(testContext(), config.ClientStorage{Driver: "redis"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestClientStorages_CloseNil(t *testing.T) {
	var s *ClientStorages
	assert.NoError(t, s.Close())
}
