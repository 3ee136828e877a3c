package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// mediaService implements the MediaService interface
type mediaService struct {
	mediaRepo      media.MediaRepository
	connector      media.MediaConnector
	packageRepo    catalog.PackageRepository
	questionRepo   catalog.QuestionRepository
	access         catalog.PackageService
	maxUploadBytes int64
	logger         logger.Logger
}

// NewMediaService creates a new instance of MediaService
func NewMediaService(
	mediaRepo media.MediaRepository,
	connector media.MediaConnector,
	packageRepo catalog.PackageRepository,
	questionRepo catalog.QuestionRepository,
	access catalog.PackageService,
	maxUploadBytes int64,
	logger logger.Logger,
) (media.MediaService, error) {
	if maxUploadBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &mediaService{
		mediaRepo:      mediaRepo,
		connector:      connector,
		packageRepo:    packageRepo,
		questionRepo:   questionRepo,
		access:         access,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}, nil
}

// Upload stores a file in the object store and records its metadata
func (s *mediaService) Upload(ctx context.Context, actor users.Actor, purpose, name, contentType string, data []byte) (*media.Media, error) {
	if len(data) == 0 {
		return nil, media.ErrEmptyUpload
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, media.ErrTooLarge
	}

	m := media.NewMedia(actor.UserID, purpose, name, contentType, int64(len(data)), time.Now().UTC())
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if err := s.connector.Upload(ctx, m, data); err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}
	if err := s.mediaRepo.Create(ctx, m); err != nil {
		if derr := s.connector.Delete(ctx, m); derr != nil {
			s.logger.Warn(fmt.Sprintf("Failed to remove orphaned object %s: %v", m.ObjectName(), derr))
		}
		return nil, fmt.Errorf("failed to create media: %w", err)
	}
	return m, nil
}

// GetByID returns media metadata the actor is allowed to read
func (s *mediaService) GetByID(ctx context.Context, actor users.Actor, mediaID string) (*media.Media, error) {
	m, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if m.VisibleTo(actor) {
		return m, nil
	}
	if m.Purpose == media.PurposeQuestionImage {
		ok, err := s.unlocksImage(ctx, actor, m.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			return m, nil
		}
	}
	return nil, media.ErrNotMediaOwner
}

// unlocksImage reports whether the actor can open a package showing the image
func (s *mediaService) unlocksImage(ctx context.Context, actor users.Actor, mediaID string) (bool, error) {
	packageIDs, err := s.questionRepo.PackageIDsByImage(ctx, mediaID)
	if err != nil {
		return false, err
	}
	for _, id := range packageIDs {
		pkg, err := s.packageRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrPackageNotFound) {
				continue
			}
			return false, err
		}
		ok, err := s.access.HasAccess(ctx, actor, pkg)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Download returns metadata and content of a file
func (s *mediaService) Download(ctx context.Context, actor users.Actor, mediaID string) (*media.Media, []byte, error) {
	m, err := s.GetByID(ctx, actor, mediaID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.connector.Download(ctx, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download media: %w", err)
	}
	return m, data, nil
}

// DeleteByID removes a file owned by the actor, admins may remove any
func (s *mediaService) DeleteByID(ctx context.Context, actor users.Actor, mediaID string) error {
	m, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if m.OwnerID != actor.UserID && !actor.IsAdmin() {
		return media.ErrNotMediaOwner
	}

	if err := s.connector.Delete(ctx, m); err != nil {
		return fmt.Errorf("failed to delete media object: %w", err)
	}
	return s.mediaRepo.DeleteByID(ctx, mediaID)
}
