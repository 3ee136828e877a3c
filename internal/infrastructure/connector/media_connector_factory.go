package connector

import (
	"context"
	"fmt"

	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// NewMediaConnector returns the connector for the configured provider
func NewMediaConnector(ctx context.Context, settings *config.MediaConnectorSettings, logger logger.Logger) (media.MediaConnector, error) {
	switch settings.Provider {
	case config.AzureCloudProvider:
		return NewAzureBlobConnector(ctx, settings, logger)
	case config.LocalStorageProvider:
		return NewLocalMediaConnector(settings, logger)
	default:
		return nil, fmt.Errorf("unsupported media provider: %s", settings.Provider)
	}
}
