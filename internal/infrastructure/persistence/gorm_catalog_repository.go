package persistence

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

const packageColumns = "question_packages.*, " +
	"(SELECT COUNT(*) FROM questions WHERE questions.package_id = question_packages.id) AS question_count"

// gormPackageRepository is the implementation of the PackageRepository interface
type gormPackageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPackageRepository creates a new gormPackageRepository instance
func NewGormPackageRepository(db *gorm.DB, logger logger.Logger) (catalog.PackageRepository, error) {
	return &gormPackageRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds a new package to the database
func (r *gormPackageRepository) Create(ctx context.Context, pkg *catalog.Package) error {
	if err := pkg.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PackageModel{}
	model.FromDomain(pkg)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(err, "failed to create package")
	}

	r.logger.Info("Created package with id ", pkg.ID)
	return nil
}

// GetByID retrieves a package with its question count
func (r *gormPackageRepository) GetByID(ctx context.Context, packageID string) (*catalog.Package, error) {
	var model models.PackageModel
	err := r.db.WithContext(ctx).Select(packageColumns).Where("question_packages.id = ?", packageID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPackageNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch package")
	}
	return model.ToDomain(), nil
}

// List retrieves packages matching the query
func (r *gormPackageRepository) List(ctx context.Context, query *catalog.PackageQuery) ([]*catalog.Package, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.PackageModel{}).Select(packageColumns)
	if !query.IncludeInactive {
		dbQuery = dbQuery.Where("is_active = ?", true)
	}
	if query.Title != "" {
		dbQuery = dbQuery.Where("LOWER(title) LIKE LOWER(?)", "%"+query.Title+"%")
	}
	if query.CreatedBy != "" {
		dbQuery = dbQuery.Where("created_by = ?", query.CreatedBy)
	}
	dbQuery = orderBy(dbQuery, query.SortBy, query.SortOrder)
	dbQuery = paginate(dbQuery, query.Limit, query.Offset)

	var found []models.PackageModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list packages")
	}

	result := make([]*catalog.Package, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// UpdateByID updates the mutable fields of a package
func (r *gormPackageRepository) UpdateByID(ctx context.Context, pkg *catalog.Package) error {
	if err := pkg.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PackageModel{}
	model.FromDomain(pkg)

	res := r.db.WithContext(ctx).Model(&models.PackageModel{}).Where("id = ?", pkg.ID).
		Select("*").Omit("id", "created_by", "date_time_created").Updates(model)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update package")
	}
	if res.RowsAffected == 0 {
		return catalog.ErrPackageNotFound
	}

	r.logger.Info("Updated package with id ", pkg.ID)
	return nil
}

// DeleteByID removes a package and all of its questions
func (r *gormPackageRepository) DeleteByID(ctx context.Context, packageID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", packageID).Delete(&models.QuestionModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete package questions")
		}
		res := tx.Where("id = ?", packageID).Delete(&models.PackageModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete package")
		}
		if res.RowsAffected == 0 {
			return catalog.ErrPackageNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Deleted package with id ", packageID)
	return nil
}

// gormQuestionRepository is the implementation of the QuestionRepository interface
type gormQuestionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormQuestionRepository creates a new gormQuestionRepository instance
func NewGormQuestionRepository(db *gorm.DB, logger logger.Logger) (catalog.QuestionRepository, error) {
	return &gormQuestionRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds a new question to the database
func (r *gormQuestionRepository) Create(ctx context.Context, question *catalog.Question) error {
	if err := question.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.QuestionModel{}
	model.FromDomain(question)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(err, "failed to create question")
	}

	r.logger.Info("Created question with id ", question.ID)
	return nil
}

// CreateBatch stores all questions or none of them
func (r *gormQuestionRepository) CreateBatch(ctx context.Context, questions []*catalog.Question) error {
	if len(questions) == 0 {
		return nil
	}

	batch := make([]*models.QuestionModel, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("validation error in question %d: %w", i+1, err)
		}
		batch[i] = &models.QuestionModel{}
		batch[i].FromDomain(q)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(batch, 100).Error
	})
	if err != nil {
		return errors.Wrap(err, "failed to create questions")
	}

	r.logger.Info(fmt.Sprintf("Created %d questions", len(batch)))
	return nil
}

// GetByID retrieves a question by its ID
func (r *gormQuestionRepository) GetByID(ctx context.Context, questionID string) (*catalog.Question, error) {
	var model models.QuestionModel
	if err := r.db.WithContext(ctx).Where("id = ?", questionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrQuestionNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch question")
	}
	return model.ToDomain(), nil
}

// ListByPackage returns the questions of a package ordered by position
func (r *gormQuestionRepository) ListByPackage(ctx context.Context, packageID string) ([]*catalog.Question, error) {
	var found []models.QuestionModel
	err := r.db.WithContext(ctx).Where("package_id = ?", packageID).
		Order("position asc").Order("id asc").Find(&found).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list questions")
	}

	result := make([]*catalog.Question, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// PackageIDsByImage returns the packages that reference an image media
func (r *gormQuestionRepository) PackageIDsByImage(ctx context.Context, mediaID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.QuestionModel{}).
		Where("image_media_id = ?", mediaID).Distinct().Pluck("package_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list packages by image")
	}
	return ids, nil
}

// NextPosition returns the position after the last question of a package
func (r *gormQuestionRepository) NextPosition(ctx context.Context, packageID string) (int, error) {
	var last *int
	err := r.db.WithContext(ctx).Model(&models.QuestionModel{}).
		Where("package_id = ?", packageID).Select("MAX(position)").Scan(&last).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to read question positions")
	}
	if last == nil {
		return 1, nil
	}
	return *last + 1, nil
}

// UpdateByID updates a question in place
func (r *gormQuestionRepository) UpdateByID(ctx context.Context, question *catalog.Question) error {
	if err := question.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.QuestionModel{}
	model.FromDomain(question)

	res := r.db.WithContext(ctx).Model(&models.QuestionModel{}).Where("id = ?", question.ID).
		Select("*").Omit("id", "package_id").Updates(model)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update question")
	}
	if res.RowsAffected == 0 {
		return catalog.ErrQuestionNotFound
	}

	r.logger.Info("Updated question with id ", question.ID)
	return nil
}

// DeleteByID removes a question by its ID
func (r *gormQuestionRepository) DeleteByID(ctx context.Context, questionID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", questionID).Delete(&models.QuestionModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete question")
	}
	if res.RowsAffected == 0 {
		return catalog.ErrQuestionNotFound
	}

	r.logger.Info("Deleted question with id ", questionID)
	return nil
}
