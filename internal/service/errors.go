package service

import "errors"

var (
	// ErrSyncInProgress is reported when Sync is called while another cycle
	// holds the single-flight lock.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrInvalidDataProvided guards the edit API against empty or
	// out-of-range fields.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenInvalid is returned when a device token fails signature,
	// issuer or expiry checks.
	ErrTokenInvalid = errors.New("device token is invalid")
)
