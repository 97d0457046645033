package config

import "errors"

var (
	// ErrInvalidClientConfigs indicates that the client configuration failed
	// validation: a usable local database DSN is missing.
	ErrInvalidClientConfigs = errors.New("invalid client configs: local database DSN is required")

	// ErrInvalidServerConfigs indicates that the server configuration failed
	// validation: listen address, database DSN or token sign key is missing.
	ErrInvalidServerConfigs = errors.New("invalid server configs: address, database DSN and token sign key are required")
)
