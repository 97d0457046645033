package models

import "time"

// Resource is a saved link or note the user wants to return to. It is one of
// the two entity kinds tracked through the sync lifecycle.
type Resource struct {
	SyncMeta

	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewResource creates a local-only resource with fresh sync metadata.
func NewResource(localID, title, url string, now time.Time) Resource {
	return Resource{
		SyncMeta:  NewSyncMeta(localID, now),
		Title:     title,
		URL:       url,
		CreatedAt: now,
	}
}

// GetSyncMeta implements Syncable.
func (r *Resource) GetSyncMeta() *SyncMeta {
	return &r.SyncMeta
}
