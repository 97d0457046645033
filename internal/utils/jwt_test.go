package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeviceToken(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		deviceID string
		duration time.Duration
		signKey  string
		wantErr  bool
	}{
		{name: "valid params", issuer: "timeshelf", deviceID: "laptop-01", duration: time.Hour, signKey: "secret"},
		{name: "empty issuer", deviceID: "laptop-01", duration: time.Hour, signKey: "secret", wantErr: true},
		{name: "empty device id", issuer: "timeshelf", duration: time.Hour, signKey: "secret", wantErr: true},
		{name: "zero duration", issuer: "timeshelf", deviceID: "laptop-01", signKey: "secret", wantErr: true},
		{name: "empty sign key", issuer: "timeshelf", deviceID: "laptop-01", duration: time.Hour, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateDeviceToken(tt.issuer, tt.deviceID, tt.duration, tt.signKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestValidateDeviceToken(t *testing.T) {
	const (
		issuer  = "timeshelf"
		signKey = "secret"
	)

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateDeviceToken(issuer, "laptop-01", time.Hour, signKey)
		require.NoError(t, err)

		deviceID, err := ValidateDeviceToken(token, signKey, issuer)
		require.NoError(t, err)
		assert.Equal(t, "laptop-01", deviceID)
	})

	t.Run("wrong sign key", func(t *testing.T) {
		token, err := GenerateDeviceToken(issuer, "laptop-01", time.Hour, signKey)
		require.NoError(t, err)

		_, err = ValidateDeviceToken(token, "other-key", issuer)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := GenerateDeviceToken("someone-else", "laptop-01", time.Hour, signKey)
		require.NoError(t, err)

		_, err = ValidateDeviceToken(token, signKey, issuer)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateDeviceToken(issuer, "laptop-01", -time.Hour, signKey)
		require.NoError(t, err)

		_, err = ValidateDeviceToken(token, signKey, issuer)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateDeviceToken("not-a-token", signKey, issuer)
		assert.Error(t, err)
	})
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing token", header: "Bearer ", wantErr: true},
		{name: "no scheme", header: "abc.def.ghi", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
