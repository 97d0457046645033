package models

import "time"

// TimeSlot is a recurring weekly block reserved for working through saved
// resources. Weekday follows time.Weekday numbering (Sunday = 0); StartMinute
// is minutes since midnight.
type TimeSlot struct {
	SyncMeta

	Label           string    `json:"label"`
	Weekday         int       `json:"weekday"`
	StartMinute     int       `json:"startMinute"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewTimeSlot creates a local-only time slot with fresh sync metadata.
func NewTimeSlot(localID, label string, weekday, startMinute, durationMinutes int, now time.Time) TimeSlot {
	return TimeSlot{
		SyncMeta:        NewSyncMeta(localID, now),
		Label:           label,
		Weekday:         weekday,
		StartMinute:     startMinute,
		DurationMinutes: durationMinutes,
		CreatedAt:       now,
	}
}

// GetSyncMeta implements Syncable.
func (t *TimeSlot) GetSyncMeta() *SyncMeta {
	return &t.SyncMeta
}
