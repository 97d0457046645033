package models

// PushItemResult is the server's verdict on a single record in a push batch.
type PushItemResult struct {
	// ClientID echoes the record's local identifier so the client can match
	// the result back to its copy.
	ClientID string `json:"clientId"`

	// ServerID is the server-assigned identifier, present on first
	// successful insert.
	ServerID string `json:"serverId,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// IsConflict is set when the server's stored version is newer than what
	// the client's push assumed. Conflicts are terminal for the attempt and
	// are never auto-retried.
	IsConflict bool `json:"isConflict"`
}

// BatchResponse is the body returned by POST /sync/batch: per-item results in
// the same order as the request, one slice per entity kind.
type BatchResponse struct {
	ResourceResults []PushItemResult `json:"resourceResults"`
	TimeSlotResults []PushItemResult `json:"timeSlotResults"`
	SuccessCount    int              `json:"successCount"`
	FailureCount    int              `json:"failureCount"`
}

// DeviceTokenResponse is returned by POST /api/device/token.
type DeviceTokenResponse struct {
	Token string `json:"token"`
}
