// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

package store

// SQLite uses positional `?` placeholders. Pending records are those in
// pending_sync or sync_failed state, except conflict-failed ones: a version
// conflict rejoins the queue only through the reset query (which bumps the
// version so the retried write is ordered after the failed one) or a fresh
// local edit. Records still in local_only state have no queued mutation and
// are not pushed.

const (
	upsertResource = `
		INSERT INTO resources (
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			title,
			url,
			notes,
			tags,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(local_id) DO UPDATE SET
			remote_id   = excluded.remote_id,
			version     = excluded.version,
			modified_at = excluded.modified_at,
			deleted     = excluded.deleted,
			sync_status = excluded.sync_status,
			retry_count = excluded.retry_count,
			last_error  = excluded.last_error,
			title       = excluded.title,
			url         = excluded.url,
			notes       = excluded.notes,
			tags        = excluded.tags;`

	getResource = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			title,
			url,
			notes,
			tags,
			created_at
		FROM resources
		WHERE local_id = ?;`

	findResourceByRemoteID = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			title,
			url,
			notes,
			tags,
			created_at
		FROM resources
		WHERE remote_id = ?;`

	listResources = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			title,
			url,
			notes,
			tags,
			created_at
		FROM resources
		WHERE deleted = FALSE
		ORDER BY created_at;`

	listPendingResources = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			title,
			url,
			notes,
			tags,
			created_at
		FROM resources
		WHERE sync_status = 'pending_sync'
		   OR (sync_status = 'sync_failed' AND last_error <> 'version conflict')
		ORDER BY modified_at ASC;`

	resetFailedResources = `
		UPDATE resources SET
			sync_status = 'pending_sync',
			version     = version + 1,
			modified_at = ?,
			retry_count = 0,
			last_error  = ''
		WHERE sync_status = 'sync_failed';`

	purgeSyncedResourceDeletions = `
		DELETE FROM resources
		WHERE deleted = TRUE AND sync_status = 'synced';`
)

const (
	upsertTimeSlot = `
		INSERT INTO time_slots (
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			label,
			weekday,
			start_minute,
			duration_minutes,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(local_id) DO UPDATE SET
			remote_id        = excluded.remote_id,
			version          = excluded.version,
			modified_at      = excluded.modified_at,
			deleted          = excluded.deleted,
			sync_status      = excluded.sync_status,
			retry_count      = excluded.retry_count,
			last_error       = excluded.last_error,
			label            = excluded.label,
			weekday          = excluded.weekday,
			start_minute     = excluded.start_minute,
			duration_minutes = excluded.duration_minutes;`

	getTimeSlot = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			label,
			weekday,
			start_minute,
			duration_minutes,
			created_at
		FROM time_slots
		WHERE local_id = ?;`

	findTimeSlotByRemoteID = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			label,
			weekday,
			start_minute,
			duration_minutes,
			created_at
		FROM time_slots
		WHERE remote_id = ?;`

	listTimeSlots = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			label,
			weekday,
			start_minute,
			duration_minutes,
			created_at
		FROM time_slots
		WHERE deleted = FALSE
		ORDER BY weekday, start_minute;`

	listPendingTimeSlots = `
		SELECT
			local_id,
			remote_id,
			version,
			modified_at,
			deleted,
			sync_status,
			retry_count,
			last_error,
			label,
			weekday,
			start_minute,
			duration_minutes,
			created_at
		FROM time_slots
		WHERE sync_status = 'pending_sync'
		   OR (sync_status = 'sync_failed' AND last_error <> 'version conflict')
		ORDER BY modified_at ASC;`

	resetFailedTimeSlots = `
		UPDATE time_slots SET
			sync_status = 'pending_sync',
			version     = version + 1,
			modified_at = ?,
			retry_count = 0,
			last_error  = ''
		WHERE sync_status = 'sync_failed';`

	purgeSyncedTimeSlotDeletions = `
		DELETE FROM time_slots
		WHERE deleted = TRUE AND sync_status = 'synced';`
)

const (
	getCheckpoint = `
		SELECT last_synced_at
		FROM sync_checkpoint
		WHERE id = 1;`

	saveCheckpoint = `
		INSERT INTO sync_checkpoint (id, last_synced_at)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_synced_at = excluded.last_synced_at;`
)
