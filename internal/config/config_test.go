package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{name: "localhost with port", input: "localhost:8080", wantHost: "localhost", wantPort: 8080},
		{name: "ip with port", input: "127.0.0.1:9090", wantHost: "127.0.0.1", wantPort: 9090},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non-numeric port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, a.Host)
			assert.Equal(t, tt.wantPort, a.Port)
			assert.Equal(t, tt.input, a.String())
		})
	}
}

func TestNetAddress_String_Empty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", input: `"30s"`, want: 30 * time.Second},
		{name: "compound string", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "raw nanoseconds", input: `1000000000`, want: time.Second},
		{name: "invalid string", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	got, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(got))
}

func TestParseJSON(t *testing.T) {
	content := `{
		"app": {"token_sign_key": "secret", "token_issuer": "timeshelf", "token_duration": "720h"},
		"storage": {"db": {"dsn": "timeshelf.db"}},
		"server": {"http_address": "localhost:8080", "request_timeout": "30s"},
		"adapter": {"base_url": "http://localhost:8080", "request_timeout": "15s", "max_retry_attempts": 3, "initial_backoff": "1s", "device_token": "tok"},
		"workers": {"sync_interval": "5m"}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "timeshelf", cfg.App.TokenIssuer)
	assert.Equal(t, 720*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "timeshelf.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 3, cfg.Adapter.MaxRetryAttempts)
	assert.Equal(t, time.Second, cfg.Adapter.InitialBackoff)
	assert.Equal(t, "tok", cfg.Adapter.DeviceToken)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestConfigBuilder_MergePriority(t *testing.T) {
	// Earlier sources win: mergo keeps the first non-zero value.
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://first"}},
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://second", DeviceToken: "tok"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://first", cfg.Adapter.BaseURL)
	assert.Equal(t, "tok", cfg.Adapter.DeviceToken)
}

func TestClientConfig_Defaults(t *testing.T) {
	cfg := &ClientConfig{Storage: Storage{DB: DB{DSN: "timeshelf.db"}}}
	cfg.applyDefaults()

	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultMaxRetryAttempts, cfg.Adapter.MaxRetryAttempts)
	assert.Equal(t, DefaultInitialBackoff, cfg.Adapter.InitialBackoff)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.NoError(t, cfg.validate())
}

func TestClientConfig_Validate(t *testing.T) {
	t.Run("missing DSN", func(t *testing.T) {
		cfg := &ClientConfig{}
		assert.ErrorIs(t, cfg.validate(), ErrInvalidClientConfigs)
	})

	t.Run("offline mode is valid", func(t *testing.T) {
		cfg := &ClientConfig{Storage: Storage{DB: DB{DSN: "timeshelf.db"}}}
		assert.NoError(t, cfg.validate())
		assert.True(t, cfg.Offline())
	})

	t.Run("online mode", func(t *testing.T) {
		cfg := &ClientConfig{
			Storage: Storage{DB: DB{DSN: "timeshelf.db"}},
			Adapter: Adapter{BaseURL: "http://localhost:8080"},
		}
		assert.NoError(t, cfg.validate())
		assert.False(t, cfg.Offline())
	})
}

func TestServerConfig_Validate(t *testing.T) {
	valid := func() *ServerConfig {
		return &ServerConfig{
			App:     App{TokenSignKey: "secret"},
			Storage: Storage{DB: DB{DSN: "postgres://localhost/timeshelf"}},
			Server:  Server{HTTPAddress: "localhost:8080"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("missing address", func(t *testing.T) {
		cfg := valid()
		cfg.Server.HTTPAddress = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
	})

	t.Run("missing DSN", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.DB.DSN = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
	})

	t.Run("missing sign key", func(t *testing.T) {
		cfg := valid()
		cfg.App.TokenSignKey = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
	})
}

func TestServerConfig_Defaults(t *testing.T) {
	cfg := &ServerConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultServerRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ADAPTER_BASE_URL", "http://env:8080")
	t.Setenv("STORAGE_DB_DATABASE_URI", "env.db")
	t.Setenv("WORKERS_SYNC_INTERVAL", "2m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "http://env:8080", cfg.Adapter.BaseURL)
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
}
