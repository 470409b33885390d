package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "gorm", cfg.StorageDriver)
	assert.Equal(t, 25, cfg.PointsPerBooking)
	assert.Equal(t, 4*time.Second, cfg.PinErrorTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.ChatReplyMinDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.ChatReplyMaxDelay)
	assert.InDelta(t, 6.315, cfg.DefaultLatitude, 1e-9)
	assert.InDelta(t, -10.804, cfg.DefaultLongitude, 1e-9)
	assert.True(t, cfg.LegacyAdminNameMatch)
	assert.NoError(t, cfg.validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CHAT_REPLY_MIN_DELAY_MS", "10")
	t.Setenv("CHAT_REPLY_MAX_DELAY_MS", "20")
	t.Setenv("LEGACY_ADMIN_NAME_MATCH", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 10*time.Millisecond, cfg.ChatReplyMinDelay)
	assert.Equal(t, 20*time.Millisecond, cfg.ChatReplyMaxDelay)
	assert.False(t, cfg.LegacyAdminNameMatch)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage driver", map[string]string{"STORAGE_DRIVER": "s3"}},
		{"unknown db driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"inverted chat delay", map[string]string{"CHAT_REPLY_MIN_DELAY_MS": "3000", "CHAT_REPLY_MAX_DELAY_MS": "1000"}},
		{"zero reward", map[string]string{"POINTS_PER_BOOKING": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_PlainNumberDurations(t *testing.T) {
	t.Setenv("SERVER_TIMEOUT_SECONDS", "45")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "15")
	t.Setenv("AI_TIMEOUT_SECONDS", "7")
	t.Setenv("PIN_ERROR_TTL_SECONDS", "3")
	t.Setenv("ASSET_SWEEP_GRACE_MINUTES", "90")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.ServerTimeout)
	assert.Equal(t, 15*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 7*time.Second, cfg.AITimeout)
	assert.Equal(t, 3*time.Second, cfg.PinErrorTTL)
	assert.Equal(t, 90*time.Minute, cfg.AssetSweepGrace)
}
