package media

import (
	"context"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// MediaService stores uploaded files and their metadata
type MediaService interface {
	Upload(ctx context.Context, actor users.Actor, purpose, name, contentType string, data []byte) (*Media, error)
	GetByID(ctx context.Context, actor users.Actor, mediaID string) (*Media, error)
	Download(ctx context.Context, actor users.Actor, mediaID string) (*Media, []byte, error)
	DeleteByID(ctx context.Context, actor users.Actor, mediaID string) error
}

// MediaRepository defines the interface for Media-related operations
type MediaRepository interface {
	Create(ctx context.Context, media *Media) error
	GetByID(ctx context.Context, mediaID string) (*Media, error)
	DeleteByID(ctx context.Context, mediaID string) error
}

// MediaConnector is an interface for interacting with object storage
type MediaConnector interface {
	Upload(ctx context.Context, media *Media, data []byte) error
	Download(ctx context.Context, media *Media) ([]byte, error)
	Delete(ctx context.Context, media *Media) error
}
