package config

import "time"

// Defaults used when no source provides a value.
const (
	DefaultRemoteAddress  = "http://localhost:3000"
	DefaultRequestTimeout = 15 * time.Second
	DefaultProbeTimeout   = 5 * time.Second
	DefaultSyncInterval   = 30 * time.Second
	DefaultSQLiteDSN      = "field-survey.db"
	DefaultBoltPath       = "field-survey.bolt"
	DefaultLogLevel       = "info"
	DefaultLogMaxSizeMB   = 10
	DefaultLogMaxBackups  = 3
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{ExportDir: "."},
		Storage: Storage{
			Driver: DriverSQLite,
			DB:     DB{DSN: DefaultSQLiteDSN},
			Bolt:   Bolt{Path: DefaultBoltPath},
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultRemoteAddress,
			RequestTimeout: DefaultRequestTimeout,
			ProbeTimeout:   DefaultProbeTimeout,
		},
		Workers: Workers{SyncInterval: DefaultSyncInterval},
		Log: Log{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
	}
}
