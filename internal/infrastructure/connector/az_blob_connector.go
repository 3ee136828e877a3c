package connector

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// AzureBlobConnector stores media objects in an Azure Blob Storage container
type AzureBlobConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureBlobConnector creates a connector and ensures the container exists
func NewAzureBlobConnector(ctx context.Context, settings *config.MediaConnectorSettings, logger logger.Logger) (*AzureBlobConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client, err := azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, settings.ContainerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", settings.ContainerName, err)
	}

	return &AzureBlobConnector{
		client:        client,
		containerName: settings.ContainerName,
		logger:        logger,
	}, nil
}

// Upload writes data under the media object name
func (abc *AzureBlobConnector) Upload(ctx context.Context, m *media.Media, data []byte) error {
	contentType := m.ContentType
	_, err := abc.client.UploadBuffer(ctx, abc.containerName, m.ObjectName(), data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob '%s': %w", m.ObjectName(), err)
	}

	abc.logger.Info("Uploaded media object ", m.ObjectName())
	return nil
}

// Download reads the object of a media record
func (abc *AzureBlobConnector) Download(ctx context.Context, m *media.Media) ([]byte, error) {
	resp, err := abc.client.DownloadStream(ctx, abc.containerName, m.ObjectName(), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, media.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to download blob '%s': %w", m.ObjectName(), err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			abc.logger.Warn("Failed to close blob stream: ", cerr)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read blob '%s': %w", m.ObjectName(), err)
	}
	return buf.Bytes(), nil
}

// Delete removes the object of a media record; a missing object is not an error
func (abc *AzureBlobConnector) Delete(ctx context.Context, m *media.Media) error {
	_, err := abc.client.DeleteBlob(ctx, abc.containerName, m.ObjectName(), nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete blob '%s': %w", m.ObjectName(), err)
	}

	abc.logger.Info("Deleted media object ", m.ObjectName())
	return nil
}
