// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

package config

import "time"

// Server defaults applied when no source provides a value.
const (
	DefaultServerRequestTimeout = 30 * time.Second
	DefaultTokenDuration        = 720 * time.Hour
	DefaultTokenIssuer          = "timeshelf"
)

// ServerConfig is the server binary's view of the merged configuration.
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
}

// GetServerConfig loads the merged configuration, applies server defaults
// and validates the result.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}
	serverCfg.applyDefaults()

	return serverCfg, serverCfg.validate()
}

func (c *ServerConfig) applyDefaults() {
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = DefaultServerRequestTimeout
	}
	if c.App.TokenDuration <= 0 {
		c.App.TokenDuration = DefaultTokenDuration
	}
	if c.App.TokenIssuer == "" {
		c.App.TokenIssuer = DefaultTokenIssuer
	}
}
