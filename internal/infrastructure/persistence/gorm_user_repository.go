package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormUserRepository is the implementation of the UserRepository interface
type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new gormUserRepository instance
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds a new user to the database
func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return users.ErrEmailTaken
		}
		return errors.Wrap(err, "failed to create user")
	}

	r.logger.Info("Created user with id ", user.ID)
	return nil
}

// GetByID retrieves a user by its ID
func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch user")
	}
	return model.ToDomain(), nil
}

// GetByEmail retrieves a user by normalized email
func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("email = ?", users.NormalizeEmail(email)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch user")
	}
	return model.ToDomain(), nil
}

// List retrieves users matching the query
func (r *gormUserRepository) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.UserModel{})
	if query.Role != "" {
		dbQuery = dbQuery.Where("role = ?", query.Role)
	}
	if query.Email != "" {
		dbQuery = dbQuery.Where("email LIKE ?", "%"+strings.ToLower(query.Email)+"%")
	}
	dbQuery = orderBy(dbQuery, query.SortBy, query.SortOrder)
	dbQuery = paginate(dbQuery, query.Limit, query.Offset)

	var found []models.UserModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	result := make([]*users.User, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// UpdateByID updates a user's data
func (r *gormUserRepository) UpdateByID(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	res := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("id = ?", user.ID).
		Select("*").Omit("id", "date_time_created").Updates(model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return users.ErrEmailTaken
		}
		return errors.Wrap(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return users.ErrNotFound
	}

	r.logger.Info("Updated user with id ", user.ID)
	return nil
}

// DeleteByID removes a user by its ID
func (r *gormUserRepository) DeleteByID(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", userID).Delete(&models.UserModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return users.ErrNotFound
	}

	r.logger.Info("Deleted user with id ", userID)
	return nil
}
