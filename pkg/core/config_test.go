package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("bithumb")

	assert.Equal(t, "bithumb", config.Exchange)
	assert.Nil(t, config.Credentials)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 0, config.RateLimitRequests)
	assert.False(t, config.HardenedNonce)
	assert.Equal(t, "info", config.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid_config",
			config:  DefaultConfig("bithumb"),
			wantErr: false,
		},
		{
			name:    "valid_with_credentials",
			config:  DefaultConfig("coinone").WithCredentials(&Credentials{APIKey: "k", SecretKey: "s"}),
			wantErr: false,
		},
		{
			name: "missing_exchange",
			config: &Config{
				Timeout: 10 * time.Second,
			},
			wantErr: true,
			errMsg:  "Exchange",
		},
		{
			name: "invalid_timeout",
			config: &Config{
				Exchange: "bithumb",
				Timeout:  -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "Timeout",
		},
		{
			name:    "empty_secret",
			config:  DefaultConfig("bithumb").WithCredentials(&Credentials{APIKey: "k"}),
			wantErr: true,
			errMsg:  "SecretKey",
		},
		{
			name: "invalid_log_level",
			config: &Config{
				Exchange: "bithumb",
				Timeout:  time.Second,
				LogLevel: "verbose",
			},
			wantErr: true,
			errMsg:  "LogLevel",
		},
		{
			name:    "rate_limit_without_period",
			config:  DefaultConfig("bithumb").WithRateLimit(10, 0),
			wantErr: true,
			errMsg:  "RateLimitPeriod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_HasCredentials(t *testing.T) {
	config := DefaultConfig("bithumb")
	assert.False(t, config.HasCredentials())

	config.WithCredentials(&Credentials{APIKey: "k"})
	assert.False(t, config.HasCredentials())

	config.WithCredentials(&Credentials{APIKey: "k", SecretKey: "s"})
	assert.True(t, config.HasCredentials())
}

func TestConfig_Chaining(t *testing.T) {
	config := DefaultConfig("coinone").
		WithTimeout(3*time.Second).
		WithRateLimit(10, time.Second).
		WithHardenedNonce(true).
		WithVenueRateLimit(true)

	assert.True(t, config.VenueRateLimit)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Equal(t, 10, config.RateLimitRequests)
	assert.Equal(t, time.Second, config.RateLimitPeriod)
	assert.True(t, config.HardenedNonce)
}

func TestConfig_Clone(t *testing.T) {
	config := DefaultConfig("bithumb").WithCredentials(&Credentials{APIKey: "key", SecretKey: "secret"})

	clone := config.Clone()
	require.Equal(t, config, clone)
	require.NotSame(t, config.Credentials, clone.Credentials)

	config.Exchange = "coinone"
	config.Credentials.APIKey = "mutated"
	config.Timeout = time.Millisecond

	assert.Equal(t, "bithumb", clone.Exchange)
	assert.Equal(t, "key", clone.Credentials.APIKey)
	assert.Equal(t, 10*time.Second, clone.Timeout)
}

func TestConfig_Clone_NoCredentials(t *testing.T) {
	clone := DefaultConfig("coinone").Clone()
	assert.Nil(t, clone.Credentials)
	assert.False(t, clone.HasCredentials())
}

func TestCredentials_String(t *testing.T) {
	creds := Credentials{APIKey: "abcdefghijklmnop", SecretKey: "very-secret"}

	assert.Equal(t, "Credentials{APIKey:abcd****mnop}", creds.String())
	assert.NotContains(t, creds.String(), "very-secret")
	assert.Equal(t, "Credentials{APIKey:****}", Credentials{APIKey: "short"}.String())
}
