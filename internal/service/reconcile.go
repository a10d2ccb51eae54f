package service

import (
	"context"
	"sort"

	"github.com/MKhiriev/go-field-survey/models"
)

// reconciler is the concrete implementation of Reconciler. It compares two
// in-memory snapshots and never touches a store; the orchestrator applies
// the resulting mutations.
type reconciler struct {
	normalizer *IdentityNormalizer
}

// NewReconciler constructs a Reconciler that normalizes both snapshots with
// normalizer before comparing them.
func NewReconciler(normalizer *IdentityNormalizer) Reconciler {
	return &reconciler{normalizer: normalizer}
}

// Reconcile implements Reconciler.
//
// It makes two linear passes after building a lookup of local records by
// canonical remote id:
//
//   - Pass 1 (over remote): a remote record with no local counterpart is
//     downloaded; one whose counterpart is older on either signal
//     (UpdatedAt or Version) overwrites it under the local key. A remote
//     record whose legacy id keys a never-pushed local record claims it.
//   - Pass 2 (over local): a local record whose canonical remote id is
//     missing from the remote listing is a zombie and is deleted. Records
//     without a canonical id never reached the server and are left alone.
//
// unreadable lists remote ids the server returned in documents that could
// not be decoded. They count as present: local records carrying them are
// neither compared nor reclaimed.
//
// ctx cancellation is checked at the start of each iteration.
func (r *reconciler) Reconcile(ctx context.Context, local, remote []models.Observation, unreadable ...string) (models.SyncPlan, error) {
	var plan models.SyncPlan

	// upserts supersede deletes on the same logical id
	upserts := make(map[string]models.Observation)
	deletes := make(map[string]struct{})

	// Build O(1) lookup keyed by canonical remote id. Local records sharing
	// a remote id are duplicates of one observation: keep one, drop the rest.
	byRemoteID := make(map[string]models.Observation, len(local))
	byLogicalID := make(map[string]models.Observation, len(local))
	for _, l := range local {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		l = r.normalizer.Normalize(l)
		byLogicalID[l.LogicalID] = l
		if !IsCanonicalID(l.RemoteID) {
			continue
		}

		kept, seen := byRemoteID[l.RemoteID]
		if !seen {
			byRemoteID[l.RemoteID] = l
			continue
		}
		keep, drop := preferLocal(kept, l)
		byRemoteID[l.RemoteID] = keep
		if drop.LogicalID != keep.LogicalID {
			deletes[drop.LogicalID] = struct{}{}
			plan.Duplicates++
		}
	}

	// ── Pass 1: iterate over remote records ─────────────────────────────────
	remoteIDs := make(map[string]struct{}, len(remote)+len(unreadable))
	for _, id := range unreadable {
		if _, dup := remoteIDs[id]; dup || !IsCanonicalID(id) {
			continue
		}
		remoteIDs[id] = struct{}{}
		plan.Skipped++
	}
	for _, rem := range remote {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		rem = r.normalizer.Normalize(rem)
		if !IsCanonicalID(rem.RemoteID) {
			plan.Skipped++
			continue
		}
		if _, dup := remoteIDs[rem.RemoteID]; dup {
			plan.Skipped++
			continue
		}
		remoteIDs[rem.RemoteID] = struct{}{}

		l, existsLocally := byRemoteID[rem.RemoteID]
		if !existsLocally {
			taken, keyed := byLogicalID[rem.LogicalID]
			switch {
			case !keyed:
				// New on the server → download as-is.
				rem.Synced = true
				byLogicalID[rem.LogicalID] = rem
				upserts[rem.LogicalID] = rem
				plan.Downloaded++
				continue
			case IsCanonicalID(taken.RemoteID):
				// The legacy logical id keys a different observation.
				rem.LogicalID = rem.RemoteID
				if _, used := byLogicalID[rem.LogicalID]; used {
					rem.LogicalID = r.normalizer.NewTemporaryID()
				}
				rem.Synced = true
				byLogicalID[rem.LogicalID] = rem
				upserts[rem.LogicalID] = rem
				plan.Downloaded++
				continue
			}

			// A never-pushed local record under the same legacy id is this
			// observation: it takes the canonical id instead of being
			// created a second time.
			if !remoteWins(rem, taken) {
				taken.RemoteID = rem.RemoteID
				taken.Synced = false
				byLogicalID[taken.LogicalID] = taken
				upserts[taken.LogicalID] = taken
				plan.Claimed++
				continue
			}
			l = taken
		}

		if !remoteWins(rem, l) {
			// Local is newer or identical; the upload phase pushes it if needed.
			continue
		}

		rem.LogicalID = l.LogicalID
		rem.CreatedAt = l.CreatedAt
		rem.Version = max(rem.Version, l.Version)
		rem.Synced = true
		byLogicalID[rem.LogicalID] = rem
		upserts[rem.LogicalID] = rem
		plan.Overwritten++
	}

	// ── Pass 2: zombie reclamation ──────────────────────────────────────────
	for remoteID, l := range byRemoteID {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		if _, onServer := remoteIDs[remoteID]; onServer {
			continue
		}
		deletes[l.LogicalID] = struct{}{}
		plan.Reclaimed++
	}

	for id := range deletes {
		if _, overwritten := upserts[id]; overwritten {
			continue
		}
		plan.Mutations = append(plan.Mutations, models.DeleteLocal(id))
	}
	for _, o := range upserts {
		plan.Mutations = append(plan.Mutations, models.Upsert(o))
	}
	sort.Slice(plan.Mutations, func(i, j int) bool {
		return plan.Mutations[i].LogicalID < plan.Mutations[j].LogicalID
	})

	return plan, nil
}

// remoteWins reports whether the remote copy takes precedence. Either a
// later modification time or a higher version is enough; a confirmed server
// write bumps the version even when the device clock is ahead.
func remoteWins(remote, local models.Observation) bool {
	return remote.UpdatedAt.After(local.UpdatedAt) || remote.Version > local.Version
}

// preferLocal picks which of two local records carrying the same remote id
// survives: the one keyed by the remote id itself, then the higher version,
// then the later update, then the smaller logical id.
func preferLocal(a, b models.Observation) (keep, drop models.Observation) {
	aAliased, bAliased := a.LogicalID == a.RemoteID, b.LogicalID == b.RemoteID
	switch {
	case aAliased != bAliased:
		if aAliased {
			return a, b
		}
		return b, a
	case a.Version != b.Version:
		if a.Version > b.Version {
			return a, b
		}
		return b, a
	case !a.UpdatedAt.Equal(b.UpdatedAt):
		if a.UpdatedAt.After(b.UpdatedAt) {
			return a, b
		}
		return b, a
	case a.LogicalID <= b.LogicalID:
		return a, b
	default:
		return b, a
	}
}
