package connector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// LocalMediaConnector keeps media objects as files below a root directory
type LocalMediaConnector struct {
	root   string
	logger logger.Logger
}

// NewLocalMediaConnector creates the root directory when missing
func NewLocalMediaConnector(settings *config.MediaConnectorSettings, logger logger.Logger) (*LocalMediaConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(settings.LocalDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalMediaConnector{root: settings.LocalDir, logger: logger}, nil
}

func (c *LocalMediaConnector) path(m *media.Media) string {
	return filepath.Join(c.root, filepath.FromSlash(m.ObjectName()))
}

// Upload writes data to the media file
func (c *LocalMediaConnector) Upload(_ context.Context, m *media.Media, data []byte) error {
	p := c.path(m)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}

	c.logger.Info("Stored media object ", m.ObjectName())
	return nil
}

// Download reads the media file
func (c *LocalMediaConnector) Download(_ context.Context, m *media.Media) ([]byte, error) {
	data, err := os.ReadFile(c.path(m))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, media.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}
	return data, nil
}

// Delete removes the media file and its directory
func (c *LocalMediaConnector) Delete(_ context.Context, m *media.Media) error {
	if err := os.RemoveAll(filepath.Dir(c.path(m))); err != nil {
		return fmt.Errorf("failed to delete media file: %w", err)
	}

	c.logger.Info("Deleted media object ", m.ObjectName())
	return nil
}
