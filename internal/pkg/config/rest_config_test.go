//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
port: "9090"
database:
  type: sqlite
  dsn: ":memory:"
logger:
  log_level: debug
  log_type: console
auth:
  jwt_secret: "0123456789abcdef0123"
  issuer: bank-skd-test
  token_ttl: 2h
tryout:
  expiry_scan_interval: 5s
  expiry_batch_size: 10
billing:
  gateway: manual
  server_key: "server-key-123"
  mentor_commission_percent: 60
  min_withdrawal: 10000
media_connector:
  provider: local
  local_dir: /tmp/media
  max_upload_bytes: 1024
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig_FromFile(t *testing.T) {
	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.Tryout.ExpiryScanInterval)
	assert.Equal(t, 60, cfg.Billing.MentorCommissionPercent)
	assert.Equal(t, int64(10000), cfg.Billing.MinWithdrawal)
	assert.Equal(t, LocalStorageProvider, cfg.MediaConnector.Provider)

	// defaults fill what the file leaves out
	assert.Equal(t, 65, cfg.Tryout.DefaultPassingTWK)
	assert.Equal(t, 80, cfg.Tryout.DefaultPassingTIU)
	assert.Equal(t, 166, cfg.Tryout.DefaultPassingTKP)
}

func TestInitializeRestConfig_EnvOverride(t *testing.T) {
	t.Setenv("BANKSKD_PORT", "7070")
	t.Setenv("BANKSKD_BILLING_MIN_WITHDRAWAL", "25000")

	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, int64(25000), cfg.Billing.MinWithdrawal)
}

func TestInitializeRestConfig_MissingSecret(t *testing.T) {
	_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AuthSettings")
}

func TestMediaConnectorSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *MediaConnectorSettings
		expectedError bool
	}{
		{
			name:          "local with dir",
			settings:      &MediaConnectorSettings{Provider: LocalStorageProvider, LocalDir: "/tmp", MaxUploadBytes: 10},
			expectedError: false,
		},
		{
			name:          "local without dir",
			settings:      &MediaConnectorSettings{Provider: LocalStorageProvider, MaxUploadBytes: 10},
			expectedError: true,
		},
		{
			name:          "azure without connection string",
			settings:      &MediaConnectorSettings{Provider: AzureCloudProvider, ContainerName: "media", MaxUploadBytes: 10},
			expectedError: true,
		},
		{
			name:          "unknown provider",
			settings:      &MediaConnectorSettings{Provider: "gcp", MaxUploadBytes: 10},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
