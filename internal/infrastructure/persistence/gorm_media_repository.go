package persistence

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormMediaRepository is the implementation of the MediaRepository interface
type gormMediaRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMediaRepository creates a new gormMediaRepository instance
func NewGormMediaRepository(db *gorm.DB, logger logger.Logger) (media.MediaRepository, error) {
	return &gormMediaRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds media metadata to the database
func (r *gormMediaRepository) Create(ctx context.Context, m *media.Media) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MediaModel{}
	model.FromDomain(m)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(err, "failed to create media")
	}

	r.logger.Info("Created media metadata with id ", m.ID)
	return nil
}

// GetByID retrieves media metadata by its ID
func (r *gormMediaRepository) GetByID(ctx context.Context, mediaID string) (*media.Media, error) {
	var model models.MediaModel
	if err := r.db.WithContext(ctx).Where("id = ?", mediaID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, media.ErrMediaNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch media")
	}
	return model.ToDomain(), nil
}

// DeleteByID removes media metadata by its ID
func (r *gormMediaRepository) DeleteByID(ctx context.Context, mediaID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", mediaID).Delete(&models.MediaModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete media")
	}
	if res.RowsAffected == 0 {
		return media.ErrMediaNotFound
	}

	r.logger.Info("Deleted media metadata with id ", mediaID)
	return nil
}
