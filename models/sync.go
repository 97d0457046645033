// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

package models

import "time"

// SyncStatus describes where a record currently sits in the offline/online
// synchronization lifecycle.
type SyncStatus string

const (
	// StatusLocalOnly marks a record created locally that has never been
	// queued for synchronization.
	StatusLocalOnly SyncStatus = "local_only"

	// StatusPendingSync marks a record with local changes waiting to be
	// pushed to the server.
	StatusPendingSync SyncStatus = "pending_sync"

	// StatusSynced marks a record whose last local state was confirmed by
	// the server.
	StatusSynced SyncStatus = "synced"

	// StatusSyncFailed marks a record whose last push was rejected or lost
	// to an unrecoverable transport error. It leaves this state only via an
	// explicit reset or a new local edit.
	StatusSyncFailed SyncStatus = "sync_failed"
)

// ReasonVersionConflict is the failure reason stored when the server reports
// a version conflict for a pushed record. Conflicts are flagged with this
// exact reason so that reports can count them apart from ordinary failures.
const ReasonVersionConflict = "version conflict"

// Valid reports whether s is one of the four known lifecycle states.
func (s SyncStatus) Valid() bool {
	switch s {
	case StatusLocalOnly, StatusPendingSync, StatusSynced, StatusSyncFailed:
		return true
	}
	return false
}

// SyncMeta carries the synchronization bookkeeping shared by every syncable
// entity. It is embedded into concrete entity types; all lifecycle
// transitions go through the methods below so that the version counter never
// decreases and status moves only along the allowed edges.
type SyncMeta struct {
	// LocalID is assigned at creation and stable for the record's local life.
	LocalID string `json:"localId"`

	// RemoteID is assigned by the server on first successful push.
	RemoteID string `json:"remoteId,omitempty"`

	// Version increments on every local mutation and on every remote update
	// accepted into the local copy. Starts at 1.
	Version int64 `json:"version"`

	// ModifiedAt is the timestamp of the last mutation.
	ModifiedAt time.Time `json:"modifiedAt"`

	// Deleted is the soft-delete flag. Deleted records stay in the local
	// store until the deletion itself has been confirmed as synced.
	Deleted bool `json:"deleted"`

	// SyncStatus, RetryCount and LastError are client-local lifecycle
	// diagnostics and never travel over the wire.
	SyncStatus SyncStatus `json:"-"`
	RetryCount int        `json:"-"`
	LastError  string     `json:"-"`
}

// NewSyncMeta returns the metadata of a freshly created record: version 1,
// StatusLocalOnly, modified now.
func NewSyncMeta(localID string, now time.Time) SyncMeta {
	return SyncMeta{
		LocalID:    localID,
		Version:    1,
		ModifiedAt: now,
		SyncStatus: StatusLocalOnly,
	}
}

// MarkDirty records a local mutation: status moves to StatusPendingSync, the
// version is bumped exactly once and ModifiedAt is stamped. A dirty edit of a
// previously failed record also clears its failure diagnostics.
func (m *SyncMeta) MarkDirty(now time.Time) {
	m.Version++
	m.ModifiedAt = now
	m.SyncStatus = StatusPendingSync
	m.RetryCount = 0
	m.LastError = ""
}

// MarkDeleted soft-deletes the record and queues the deletion for push.
func (m *SyncMeta) MarkDeleted(now time.Time) {
	m.Deleted = true
	m.MarkDirty(now)
}

// MarkSynced records server acceptance: status becomes StatusSynced, failure
// diagnostics are cleared and, when the server assigned an identifier for the
// first time, it is attached.
func (m *SyncMeta) MarkSynced(remoteID string) {
	if remoteID != "" {
		m.RemoteID = remoteID
	}
	m.SyncStatus = StatusSynced
	m.RetryCount = 0
	m.LastError = ""
}

// MarkFailed records a rejected or lost push attempt.
func (m *SyncMeta) MarkFailed(reason string) {
	m.SyncStatus = StatusSyncFailed
	m.RetryCount++
	m.LastError = reason
}

// ResetFailed is the operator escape hatch for stuck records: a failed record
// is re-queued as StatusPendingSync with diagnostics cleared. Like any other
// transition into StatusPendingSync it bumps the version and stamps
// ModifiedAt. Returns false when the record was not in StatusSyncFailed.
func (m *SyncMeta) ResetFailed(now time.Time) bool {
	if m.SyncStatus != StatusSyncFailed {
		return false
	}
	m.MarkDirty(now)
	return true
}

// AcceptRemote overwrites the local metadata with a newer remote state while
// keeping the version counter monotonic: accepting a remote update counts as
// a mutation, so the resulting version is remote's version or local+1,
// whichever is greater. The record ends up StatusSynced with diagnostics
// cleared.
func (m *SyncMeta) AcceptRemote(remote SyncMeta) {
	version := remote.Version
	if version <= m.Version {
		version = m.Version + 1
	}
	if remote.RemoteID != "" {
		m.RemoteID = remote.RemoteID
	}
	m.Version = version
	m.ModifiedAt = remote.ModifiedAt
	m.Deleted = remote.Deleted
	m.MarkSynced("")
}

// AsSynced returns a copy of m normalized for local insertion of a record
// that originated on the server: StatusSynced, no failure diagnostics.
func (m SyncMeta) AsSynced() SyncMeta {
	m.SyncStatus = StatusSynced
	m.RetryCount = 0
	m.LastError = ""
	return m
}

// Purgeable reports whether the record may be physically removed: it must be
// soft-deleted and the deletion itself must have been confirmed as synced.
func (m *SyncMeta) Purgeable() bool {
	return m.Deleted && m.SyncStatus == StatusSynced
}

// Pending reports whether the record should be included in the next push
// batch. Conflict-failed records are excluded: they rejoin the queue only
// through ResetFailed or a fresh local edit.
func (m *SyncMeta) Pending() bool {
	if m.SyncStatus == StatusPendingSync {
		return true
	}
	return m.SyncStatus == StatusSyncFailed && m.LastError != ReasonVersionConflict
}

// Syncable is the capability interface every synchronized entity implements
// by embedding SyncMeta. Batch processing is done as explicit per-kind passes
// plus this accessor; there is no runtime type dispatch.
type Syncable interface {
	GetSyncMeta() *SyncMeta
}

// LatestModifiedAt returns the newest ModifiedAt among items, or the zero
// time for an empty set. Used to advance the pull checkpoint.
func LatestModifiedAt[T Syncable](items []T) time.Time {
	var latest time.Time
	for _, it := range items {
		if ts := it.GetSyncMeta().ModifiedAt; ts.After(latest) {
			latest = ts
		}
	}
	return latest
}
