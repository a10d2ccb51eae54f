package models

import "time"

// MutationKind enumerates the local store changes a reconciliation can ask for.
type MutationKind int

const (
	// MutationUpsert writes Observation under Observation.LogicalID.
	MutationUpsert MutationKind = iota + 1
	// MutationDeleteLocal removes the record stored under LogicalID.
	MutationDeleteLocal
)

// String returns a human-readable name for logs.
func (k MutationKind) String() string {
	switch k {
	case MutationUpsert:
		return "upsert"
	case MutationDeleteLocal:
		return "delete_local"
	default:
		return "unknown"
	}
}

// StoreMutation is one change to the local store produced by reconciliation.
// For MutationUpsert the Observation field is set; for MutationDeleteLocal
// only LogicalID is meaningful.
type StoreMutation struct {
	Kind        MutationKind
	LogicalID   string
	Observation Observation
}

// Upsert builds a MutationUpsert for o.
func Upsert(o Observation) StoreMutation {
	return StoreMutation{Kind: MutationUpsert, LogicalID: o.LogicalID, Observation: o}
}

// DeleteLocal builds a MutationDeleteLocal for logicalID.
func DeleteLocal(logicalID string) StoreMutation {
	return StoreMutation{Kind: MutationDeleteLocal, LogicalID: logicalID}
}

// SyncPlan is the outcome of comparing a local and a remote snapshot.
type SyncPlan struct {
	// Mutations target pairwise distinct logical ids, sorted by LogicalID.
	Mutations []StoreMutation
	// Downloaded counts remote records new to the local store.
	Downloaded int
	// Overwritten counts local records replaced by a newer remote copy.
	Overwritten int
	// Reclaimed counts zombie records removed locally.
	Reclaimed int
	// Duplicates counts extra local records sharing a remote id.
	Duplicates int
	// Claimed counts never-pushed local records that took the canonical id
	// of a remote record sharing their legacy id.
	Claimed int
	// Skipped counts remote records without a canonical id.
	Skipped int
}

// SyncPhase is the state of the orchestrator within one pass.
type SyncPhase string

const (
	PhaseIdle        SyncPhase = "idle"
	PhaseProbing     SyncPhase = "probing"
	PhaseOffline     SyncPhase = "offline"
	PhaseDownloading SyncPhase = "downloading"
	PhaseReconciling SyncPhase = "reconciling"
	PhaseApplying    SyncPhase = "applying"
	PhaseUploading   SyncPhase = "uploading"
)

// SyncReport summarizes one sync pass.
type SyncReport struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Online reports the connectivity probe result.
	Online bool `json:"online"`
	// FinalPhase is the last phase reached. PhaseIdle means the pass ran to
	// completion; any other value names the step that ended it early.
	FinalPhase SyncPhase `json:"final_phase"`

	Downloaded  int `json:"downloaded"`
	Overwritten int `json:"overwritten"`
	Reclaimed   int `json:"reclaimed"`
	Duplicates  int `json:"duplicates"`
	Claimed     int `json:"claimed"`
	Skipped     int `json:"skipped"`

	Created    int `json:"created"`
	Updated    int `json:"updated"`
	PushFailed int `json:"push_failed"`
	Demoted    int `json:"demoted"`

	DeletionsFlushed int `json:"deletions_flushed"`
	// Pending is the number of unsynced records left after the pass.
	Pending int `json:"pending"`
	// Total is the number of records in the refreshed snapshot.
	Total int `json:"total"`
}

// Completed reports whether the pass reached the end of the upload phase.
func (r SyncReport) Completed() bool {
	return r.FinalPhase == PhaseIdle
}

// TriggerOutcome describes what happened to a sync trigger.
type TriggerOutcome int

const (
	// TriggerStarted means a pass was started in the background.
	TriggerStarted TriggerOutcome = iota + 1
	// TriggerQueued means a pass was running and one more was queued.
	TriggerQueued
	// TriggerDropped means a pass was running and one was already queued.
	TriggerDropped
)

func (t TriggerOutcome) String() string {
	switch t {
	case TriggerStarted:
		return "started"
	case TriggerQueued:
		return "queued"
	case TriggerDropped:
		return "dropped"
	default:
		return "unknown"
	}
}
