package adapter

import "errors"

// Transport error taxonomy. Callers match with [errors.Is] to decide how a
// failed call affects local state:
//   - ErrNetwork covers connection failures and 5xx responses; the call is
//     retried with exponential backoff before surfacing.
//   - ErrTimeout covers per-request deadline expiry; it surfaces immediately
//     without retries.
//   - ErrRejected covers 4xx responses other than 401/409; the request was
//     understood and refused, so retrying the same payload cannot succeed.
var (
	ErrNetwork         = errors.New("network error")
	ErrTimeout         = errors.New("request timed out")
	ErrRejected        = errors.New("request rejected")
	ErrUnauthorized    = errors.New("client unauthorized")
	ErrVersionConflict = errors.New("version conflict")
)
