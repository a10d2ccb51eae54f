package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// ExportDir is the default destination directory for export files.
	ExportDir string
}

// ClientAdapter holds settings used by the remote API adapter.
type ClientAdapter struct {
	// HTTPAddress is the remote API base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// ProbeTimeout bounds the connectivity probe.
	ProbeTimeout time.Duration
}

// ClientDB contains SQLite connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientBolt contains bbolt settings for the client.
type ClientBolt struct {
	// Path is the bbolt file path.
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Driver is [DriverSQLite] or [DriverBolt].
	Driver string
	// DB holds SQLite settings.
	DB ClientDB
	// Bolt holds bbolt settings.
	Bolt ClientBolt
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the scheduled sync pass runs.
	SyncInterval time.Duration
	// ImportDir is the watched import inbox. Empty disables the watcher.
	ImportDir string
}

// ClientLog contains the client log destination and rotation policy.
type ClientLog struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the remote API address and timeouts.
	Adapter ClientAdapter
	// Storage contains local store settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Log contains logging settings.
	Log ClientLog
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			ExportDir: cfg.App.ExportDir,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ProbeTimeout:   cfg.Adapter.ProbeTimeout,
		},
		Storage: ClientStorage{
			Driver: cfg.Storage.Driver,
			DB:     ClientDB{DSN: cfg.Storage.DB.DSN},
			Bolt:   ClientBolt{Path: cfg.Storage.Bolt.Path},
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			ImportDir:    cfg.Workers.ImportDir,
		},
		Log: ClientLog{
			File:       cfg.Log.File,
			Level:      cfg.Log.Level,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		},
	}
}
