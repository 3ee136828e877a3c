//go:build integration
// +build integration

package connector

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

func newAzureTestConnector(t *testing.T) *AzureBlobConnector {
	t.Helper()

	settings := &config.MediaConnectorSettings{
		Provider:         config.AzureCloudProvider,
		ConnectionString: TestConnectionString,
		ContainerName:    TestContainerName,
		MaxUploadBytes:   1 << 20,
	}

	c, err := NewAzureBlobConnector(context.Background(), settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return c
}

func TestAzureBlobConnector_UploadDownloadDelete(t *testing.T) {
	c := newAzureTestConnector(t)
	ctx := context.Background()

	m := media.NewMedia(uuid.NewString(), media.PurposeQuestionImage, "grafik.png", "image/png", 4, time.Now().UTC())
	content := []byte{0x89, 'P', 'N', 'G'}

	require.NoError(t, c.Upload(ctx, m, content))

	downloaded, err := c.Download(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)

	require.NoError(t, c.Delete(ctx, m))

	_, err = c.Download(ctx, m)
	assert.ErrorIs(t, err, media.ErrMediaNotFound)
}

func TestAzureBlobConnector_Delete_Missing(t *testing.T) {
	c := newAzureTestConnector(t)

	m := media.NewMedia(uuid.NewString(), media.PurposeAvatar, "none.png", "image/png", 1, time.Now().UTC())
	assert.NoError(t, c.Delete(context.Background(), m))
}

func TestNewMediaConnector_Azure(t *testing.T) {
	settings := &config.MediaConnectorSettings{
		Provider:         config.AzureCloudProvider,
		ConnectionString: TestConnectionString,
		ContainerName:    TestContainerName,
		MaxUploadBytes:   1 << 20,
	}

	c, err := NewMediaConnector(context.Background(), settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &AzureBlobConnector{}, c)
}
