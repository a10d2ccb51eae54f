package models

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PushResult is what the remote API returned for a create or update.
type PushResult struct {
	// RemoteID is the canonical identifier of the stored document.
	RemoteID string
	// Version is the server-side version after the write.
	Version int64
	// Modified is the number of documents changed by an update.
	Modified int64
}

// MigrationEntry is one line of the legacy id migration report.
type MigrationEntry struct {
	OldID  string `json:"oldId"`
	NewID  string `json:"newId,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// MigrationReport is the body of POST /api/migrate-ids.
type MigrationReport struct {
	Total    int              `json:"total"`
	Migrated int              `json:"migrated"`
	Failed   int              `json:"failed"`
	Report   []MigrationEntry `json:"report"`
}
