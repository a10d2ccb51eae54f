package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names declared by [RegisterFlags].
const (
	FlagConfig         = "config"
	FlagAddress        = "address"
	FlagRequestTimeout = "request-timeout"
	FlagProbeTimeout   = "probe-timeout"
	FlagStorage        = "storage"
	FlagDSN            = "dsn"
	FlagBoltPath       = "bolt-path"
	FlagSyncInterval   = "sync-interval"
	FlagImportDir      = "import-dir"
	FlagExportDir      = "export-dir"
	FlagLogFile        = "log-file"
	FlagLogLevel       = "log-level"
)

// RegisterFlags declares all configuration flags on fs. The CLI calls it on
// the persistent flag set of its root command so every sub-command accepts
// them.
//
// Flags:
//
//	-c/--config       json file path with configs
//	-a/--address      remote API base URL
//	--request-timeout remote request timeout (e.g. "15s")
//	--probe-timeout   connectivity probe timeout (e.g. "5s")
//	--storage         local store driver: sqlite or bolt
//	-d/--dsn          SQLite DSN
//	--bolt-path       bbolt file path
//	--sync-interval   scheduled sync period (e.g. "30s")
//	--import-dir      watched import inbox directory
//	--export-dir      default export directory
//	--log-file        rotated log file path
//	--log-level       log level
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.StringP(FlagAddress, "a", "", "Remote API base URL")
	fs.Duration(FlagRequestTimeout, 0, "Remote request timeout (e.g., 15s)")
	fs.Duration(FlagProbeTimeout, 0, "Connectivity probe timeout (e.g., 5s)")
	fs.String(FlagStorage, "", "Local store driver: sqlite or bolt")
	fs.StringP(FlagDSN, "d", "", "SQLite DSN")
	fs.String(FlagBoltPath, "", "bbolt file path")
	fs.Duration(FlagSyncInterval, 0, "Scheduled sync interval (e.g., 30s)")
	fs.String(FlagImportDir, "", "Import inbox directory watched while running")
	fs.String(FlagExportDir, "", "Default export directory")
	fs.String(FlagLogFile, "", "Log file path (rotated)")
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
}

// ParseFlags reads the flags declared by [RegisterFlags] from an already
// parsed fs and returns them as a partial [StructuredConfig]. Unset flags
// keep their zero values so they never override other sources.
func ParseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	var errs []error
	str := func(name string) string {
		v, err := fs.GetString(name)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	dur := func(name string) Duration {
		v, err := fs.GetDuration(name)
		if err != nil {
			errs = append(errs, err)
		}
		return Duration(v)
	}

	cfg := &StructuredConfig{
		App: App{ExportDir: str(FlagExportDir)},
		Storage: Storage{
			Driver: str(FlagStorage),
			DB:     DB{DSN: str(FlagDSN)},
			Bolt:   Bolt{Path: str(FlagBoltPath)},
		},
		Adapter: Adapter{
			HTTPAddress:    str(FlagAddress),
			RequestTimeout: dur(FlagRequestTimeout).Std(),
			ProbeTimeout:   dur(FlagProbeTimeout).Std(),
		},
		Workers: Workers{
			SyncInterval: dur(FlagSyncInterval).Std(),
			ImportDir:    str(FlagImportDir),
		},
		Log: Log{
			File:  str(FlagLogFile),
			Level: str(FlagLogLevel),
		},
		JSONFilePath: str(FlagConfig),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("error reading flags: %w", errors.Join(errs...))
	}

	return cfg, nil
}
