// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveObservation = `
		INSERT INTO observations (
			logical_id,
			remote_id,
			created_at,
			updated_at,
			version,
			synced,
			payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT(logical_id) DO UPDATE SET
			remote_id  = excluded.remote_id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			version    = excluded.version,
			synced     = excluded.synced,
			payload    = excluded.payload;`

	getObservation = `
		SELECT
			logical_id,
			remote_id,
			created_at,
			updated_at,
			version,
			synced,
			payload
		FROM observations
		WHERE logical_id = $1;`

	getAllObservations = `
		SELECT
			logical_id,
			remote_id,
			created_at,
			updated_at,
			version,
			synced,
			payload
		FROM observations
		ORDER BY created_at DESC, logical_id ASC;`

	deleteObservation = `
		DELETE FROM observations
		WHERE logical_id = $1;`

	enqueueDeletion = `
		INSERT INTO pending_deletions (remote_id, requested_at)
		VALUES ($1, $2)
		ON CONFLICT(remote_id) DO NOTHING;`

	getPendingDeletions = `
		SELECT remote_id
		FROM pending_deletions
		ORDER BY requested_at ASC, remote_id ASC;`

	removeDeletion = `
		DELETE FROM pending_deletions
		WHERE remote_id = $1;`
)
