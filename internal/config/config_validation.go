package config

// validate on the merged StructuredConfig is intentionally permissive: the
// same struct backs both binaries, so binary-specific requirements are
// checked by the ClientConfig and ServerConfig views instead.
func (c *StructuredConfig) validate() error {
	return nil
}

func (c *ClientConfig) validate() error {
	if c.Storage.DB.DSN == "" {
		return ErrInvalidClientConfigs
	}

	// Empty BaseURL is valid: the client runs in offline-only mode.
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Server.HTTPAddress == "" || c.Storage.DB.DSN == "" || c.App.TokenSignKey == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
