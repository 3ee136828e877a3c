//go:build unit
// +build unit

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/pkg/config"
)

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bank-skd.log")

	logger := NewFileLogger(config.LogLevelInfo, "bank-skd-worker", logPath, 10, 3, 28)
	require.NotNil(t, logger)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logOutput := string(content)
	assert.NotContains(t, logOutput, "debug message")
	assert.Contains(t, logOutput, "info message")
	assert.Contains(t, logOutput, "warn message")
	assert.Contains(t, logOutput, "error message")
	assert.Contains(t, logOutput, `"service":"bank-skd-worker"`)
}

func TestFileLogger_CriticalKeepsOnlyPanics(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bank-skd.log")
	logger := NewFileLogger(config.LogLevelCritical, config.DefaultLogService, logPath, 10, 3, 28)

	logger.Error("payment callback rejected")
	assert.PanicsWithValue(t, "database unreachable", func() {
		logger.Panic("database unreachable")
	})

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "payment callback rejected")
	assert.Contains(t, string(content), `"level":"CRITICAL"`)
	assert.Contains(t, string(content), "database unreachable")
}
