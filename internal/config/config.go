// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Storage driver names accepted by [Storage.Driver].
const (
	// DriverSQLite keeps observations in a SQLite database file.
	DriverSQLite = "sqlite"
	// DriverBolt keeps observations in a bbolt key-value file.
	DriverBolt = "bolt"
)

// StructuredConfig is the top-level configuration container for the
// go-field-survey client. It aggregates all sub-configurations and is
// populated by merging built-in defaults, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the default export
	// directory.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the on-device observation store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote observation API address and timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the client log destination, level and rotation policy.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// ExportDir is the directory where export files are written when no
	// explicit output path is given.
	// Env: APP_EXPORT_DIR
	ExportDir string `env:"EXPORT_DIR"`
}

// Storage groups the configuration for the local observation store.
type Storage struct {
	// Driver selects the backend: [DriverSQLite] or [DriverBolt].
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`

	// Bolt holds the bbolt file settings.
	Bolt Bolt `envPrefix:"BOLT_"`
}

// DB holds connection settings for the SQLite backend.
type DB struct {
	// DSN is the SQLite data source name, usually a file path
	// (e.g. "field-survey.db" or "file:survey.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Bolt holds settings for the bbolt backend.
type Bolt struct {
	// Path is the bbolt database file path.
	// Env: STORAGE_BOLT_PATH
	Path string `env:"PATH"`
}

// Adapter holds configuration of the remote observation API client.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API
	// (e.g. "http://localhost:3000"). A missing scheme defaults to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the transport timeout applied to every remote call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProbeTimeout bounds the connectivity health check.
	// Env: ADAPTER_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the scheduled sync pass.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ImportDir is an optional inbox directory watched for JSON files to
	// import. Empty disables the watcher.
	// Env: WORKERS_IMPORT_DIR
	ImportDir string `env:"IMPORT_DIR"`
}

// Log holds the client log destination and rotation policy.
type Log struct {
	// File is the log file path. Empty means stderr.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// MaxSizeMB is the size in megabytes at which the file is rotated.
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`

	// MaxBackups is the number of rotated files to keep.
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`

	// MaxAgeDays is the number of days rotated files are kept.
	// Env: LOG_MAX_AGE_DAYS
	MaxAgeDays int `env:"MAX_AGE_DAYS"`

	// Compress gzips rotated files.
	// Env: LOG_COMPRESS
	Compress bool `env:"COMPRESS"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (later sources override non-zero
// fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags declared on fs by [RegisterFlags] (fs may be nil)
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}
