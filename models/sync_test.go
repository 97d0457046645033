package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNewSyncMeta(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)

	assert.Equal(t, "local-1", m.LocalID)
	assert.Equal(t, int64(1), m.Version)
	assert.Equal(t, StatusLocalOnly, m.SyncStatus)
	assert.Equal(t, testNow, m.ModifiedAt)
	assert.False(t, m.Deleted)
}

func TestSyncMeta_MarkDirty_BumpsVersionExactlyOnce(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)

	edited := testNow.Add(time.Minute)
	m.MarkDirty(edited)

	assert.Equal(t, int64(2), m.Version)
	assert.Equal(t, StatusPendingSync, m.SyncStatus)
	assert.Equal(t, edited, m.ModifiedAt)
}

func TestSyncMeta_VersionNeverDecreases(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)

	prev := m.Version
	ops := []func(){
		func() { m.MarkDirty(testNow.Add(time.Minute)) },
		func() { m.MarkDeleted(testNow.Add(2 * time.Minute)) },
		func() { m.MarkFailed("boom"); m.ResetFailed(testNow.Add(3 * time.Minute)) },
		func() { m.AcceptRemote(SyncMeta{LocalID: "local-1", Version: 1, ModifiedAt: testNow}) },
	}

	for _, op := range ops {
		op()
		assert.Greater(t, m.Version, prev, "version must strictly grow on every mutation")
		prev = m.Version
	}
}

func TestSyncMeta_MarkDeleted(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)

	m.MarkDeleted(testNow.Add(time.Minute))

	assert.True(t, m.Deleted)
	assert.Equal(t, StatusPendingSync, m.SyncStatus)
	assert.Equal(t, int64(2), m.Version)
}

func TestSyncMeta_MarkSynced(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)
	m.MarkDirty(testNow.Add(time.Minute))
	m.MarkFailed("server error")

	m.MarkSynced("srv-42")

	assert.Equal(t, StatusSynced, m.SyncStatus)
	assert.Equal(t, "srv-42", m.RemoteID)
	assert.Zero(t, m.RetryCount)
	assert.Empty(t, m.LastError)
}

func TestSyncMeta_MarkSynced_KeepsExistingRemoteID(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)
	m.RemoteID = "srv-42"

	m.MarkSynced("")

	assert.Equal(t, "srv-42", m.RemoteID)
}

func TestSyncMeta_MarkFailed(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)
	m.MarkDirty(testNow.Add(time.Minute))

	m.MarkFailed("connection refused")
	m.MarkFailed(ReasonVersionConflict)

	assert.Equal(t, StatusSyncFailed, m.SyncStatus)
	assert.Equal(t, 2, m.RetryCount)
	assert.Equal(t, ReasonVersionConflict, m.LastError)
}

func TestSyncMeta_ResetFailed(t *testing.T) {
	tests := []struct {
		name   string
		status SyncStatus
		want   bool
	}{
		{name: "failed record is requeued", status: StatusSyncFailed, want: true},
		{name: "synced record untouched", status: StatusSynced, want: false},
		{name: "pending record untouched", status: StatusPendingSync, want: false},
		{name: "local-only record untouched", status: StatusLocalOnly, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSyncMeta("local-1", testNow)
			m.SyncStatus = tt.status
			m.RetryCount = 3
			m.LastError = "boom"

			got := m.ResetFailed(testNow.Add(time.Hour))
			require.Equal(t, tt.want, got)

			if tt.want {
				assert.Equal(t, StatusPendingSync, m.SyncStatus)
				assert.Zero(t, m.RetryCount)
				assert.Empty(t, m.LastError)
				assert.Equal(t, int64(2), m.Version)
			} else {
				assert.Equal(t, tt.status, m.SyncStatus)
			}
		})
	}
}

func TestSyncMeta_AcceptRemote_MonotonicVersion(t *testing.T) {
	tests := []struct {
		name          string
		localVersion  int64
		remoteVersion int64
		wantVersion   int64
	}{
		{name: "remote ahead wins", localVersion: 2, remoteVersion: 5, wantVersion: 5},
		{name: "remote equal bumps local", localVersion: 3, remoteVersion: 3, wantVersion: 4},
		{name: "remote behind bumps local", localVersion: 7, remoteVersion: 2, wantVersion: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSyncMeta("local-1", testNow)
			m.Version = tt.localVersion
			m.SyncStatus = StatusSynced

			remoteAt := testNow.Add(time.Hour)
			m.AcceptRemote(SyncMeta{
				LocalID:    "local-1",
				RemoteID:   "srv-9",
				Version:    tt.remoteVersion,
				ModifiedAt: remoteAt,
				Deleted:    true,
			})

			assert.Equal(t, tt.wantVersion, m.Version)
			assert.Equal(t, "srv-9", m.RemoteID)
			assert.Equal(t, remoteAt, m.ModifiedAt)
			assert.True(t, m.Deleted)
			assert.Equal(t, StatusSynced, m.SyncStatus)
		})
	}
}

func TestSyncMeta_Purgeable(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)
	assert.False(t, m.Purgeable())

	m.MarkDeleted(testNow.Add(time.Minute))
	assert.False(t, m.Purgeable(), "deleted but not yet synced must be retained")

	m.MarkSynced("srv-1")
	assert.True(t, m.Purgeable())
}

func TestSyncMeta_Pending(t *testing.T) {
	m := NewSyncMeta("local-1", testNow)
	assert.False(t, m.Pending())

	m.MarkDirty(testNow.Add(time.Minute))
	assert.True(t, m.Pending())

	m.MarkFailed("boom")
	assert.True(t, m.Pending(), "failed records are listed together with pending ones")

	m.MarkFailed(ReasonVersionConflict)
	assert.False(t, m.Pending(), "conflicts wait for an explicit reset or a new edit")

	m.MarkSynced("")
	assert.False(t, m.Pending())
}

func TestSyncStatus_Valid(t *testing.T) {
	for _, s := range []SyncStatus{StatusLocalOnly, StatusPendingSync, StatusSynced, StatusSyncFailed} {
		assert.True(t, s.Valid())
	}
	assert.False(t, SyncStatus("resolved").Valid())
}

func TestLatestModifiedAt(t *testing.T) {
	r1 := NewResource("a", "first", "https://example.com/a", testNow)
	r2 := NewResource("b", "second", "https://example.com/b", testNow.Add(time.Hour))

	latest := LatestModifiedAt([]*Resource{&r1, &r2})
	assert.Equal(t, testNow.Add(time.Hour), latest)

	assert.True(t, LatestModifiedAt([]*Resource(nil)).IsZero())
}

func TestBatchRequest_EmptyAndSize(t *testing.T) {
	var batch BatchRequest
	assert.True(t, batch.Empty())
	assert.Zero(t, batch.Size())

	batch.Resources = append(batch.Resources, NewResource("a", "t", "u", testNow))
	batch.TimeSlots = append(batch.TimeSlots, NewTimeSlot("b", "deep work", 1, 540, 90, testNow))

	assert.False(t, batch.Empty())
	assert.Equal(t, 2, batch.Size())
}
