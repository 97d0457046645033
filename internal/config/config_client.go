// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

package config

import "time"

// Client defaults applied when neither env, flags nor the JSON file provide
// a value.
const (
	DefaultRequestTimeout   = 15 * time.Second
	DefaultMaxRetryAttempts = 3
	DefaultInitialBackoff   = time.Second
	DefaultSyncInterval     = 5 * time.Minute
)

// ClientConfig is the client binary's view of the merged configuration. It
// carries only the sections the client consumes: local storage, the remote
// adapter, and the background worker schedule.
type ClientConfig struct {
	Storage Storage
	Adapter Adapter
	Workers Workers
}

// Offline reports whether the client runs without a remote endpoint. In
// offline mode every sync cycle is a local no-op and no network call is made.
func (c *ClientConfig) Offline() bool {
	return c.Adapter.BaseURL == ""
}

// GetClientConfig loads the merged configuration, applies client defaults
// and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		Storage: cfg.Storage,
		Adapter: cfg.Adapter,
		Workers: cfg.Workers,
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (c *ClientConfig) applyDefaults() {
	if c.Adapter.RequestTimeout <= 0 {
		c.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if c.Adapter.MaxRetryAttempts <= 0 {
		c.Adapter.MaxRetryAttempts = DefaultMaxRetryAttempts
	}
	if c.Adapter.InitialBackoff <= 0 {
		c.Adapter.InitialBackoff = DefaultInitialBackoff
	}
	if c.Workers.SyncInterval <= 0 {
		c.Workers.SyncInterval = DefaultSyncInterval
	}
}
