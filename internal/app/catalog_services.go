package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// packageService implements the PackageService interface
type packageService struct {
	packageRepo catalog.PackageRepository
	purchases   catalog.PurchaseChecker
	defaults    config.TryoutSettings
	logger      logger.Logger
}

// NewPackageService creates a new instance of PackageService. Packages created
// without thresholds take the defaults from tryout settings.
func NewPackageService(packageRepo catalog.PackageRepository, purchases catalog.PurchaseChecker, defaults config.TryoutSettings, logger logger.Logger) (catalog.PackageService, error) {
	return &packageService{
		packageRepo: packageRepo,
		purchases:   purchases,
		defaults:    defaults,
		logger:      logger,
	}, nil
}

// Create stores a package owned by the actor
func (s *packageService) Create(ctx context.Context, actor users.Actor, pkg *catalog.Package) (*catalog.Package, error) {
	if !actor.IsAdmin() && !actor.IsMentor() {
		return nil, catalog.ErrNotOwner
	}

	pkg.ID = uuid.NewString()
	pkg.CreatedBy = actor.UserID
	pkg.DateTimeCreated = time.Now().UTC()
	if pkg.PassingTWK == 0 && pkg.PassingTIU == 0 && pkg.PassingTKP == 0 {
		pkg.PassingTWK = s.defaults.DefaultPassingTWK
		pkg.PassingTIU = s.defaults.DefaultPassingTIU
		pkg.PassingTKP = s.defaults.DefaultPassingTKP
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return pkg, nil
}

// Update replaces the editable fields of a package the actor manages
func (s *packageService) Update(ctx context.Context, actor users.Actor, pkg *catalog.Package) (*catalog.Package, error) {
	current, err := s.packageRepo.GetByID(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(current.CreatedBy) {
		return nil, catalog.ErrNotOwner
	}

	pkg.CreatedBy = current.CreatedBy
	pkg.DateTimeCreated = current.DateTimeCreated
	if err := s.packageRepo.UpdateByID(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return s.packageRepo.GetByID(ctx, pkg.ID)
}

// Delete removes a package the actor manages
func (s *packageService) Delete(ctx context.Context, actor users.Actor, packageID string) error {
	current, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return err
	}
	if !actor.CanManage(current.CreatedBy) {
		return catalog.ErrNotOwner
	}
	return s.packageRepo.DeleteByID(ctx, packageID)
}

// List returns packages matching the query
func (s *packageService) List(ctx context.Context, query *catalog.PackageQuery) ([]*catalog.Package, error) {
	return s.packageRepo.List(ctx, query)
}

// GetByID returns a package with its question count
func (s *packageService) GetByID(ctx context.Context, packageID string) (*catalog.Package, error) {
	return s.packageRepo.GetByID(ctx, packageID)
}

// HasAccess is true for free packages, admins, the creator and buyers
func (s *packageService) HasAccess(ctx context.Context, actor users.Actor, pkg *catalog.Package) (bool, error) {
	if pkg.IsFree() || actor.IsAdmin() || actor.UserID == pkg.CreatedBy {
		return true, nil
	}
	bought, err := s.purchases.HasCompletedPurchase(ctx, actor.UserID, pkg.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return bought, nil
}

// questionService implements the QuestionService interface
type questionService struct {
	packageRepo  catalog.PackageRepository
	questionRepo catalog.QuestionRepository
	logger       logger.Logger
}

// NewQuestionService creates a new instance of QuestionService
func NewQuestionService(packageRepo catalog.PackageRepository, questionRepo catalog.QuestionRepository, logger logger.Logger) (catalog.QuestionService, error) {
	return &questionService{
		packageRepo:  packageRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}, nil
}

func (s *questionService) managedPackage(ctx context.Context, actor users.Actor, packageID string) (*catalog.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(pkg.CreatedBy) {
		return nil, catalog.ErrNotOwner
	}
	return pkg, nil
}

// Create appends a question to a package; position 0 places it last
func (s *questionService) Create(ctx context.Context, actor users.Actor, question *catalog.Question) (*catalog.Question, error) {
	if _, err := s.managedPackage(ctx, actor, question.PackageID); err != nil {
		return nil, err
	}

	question.ID = uuid.NewString()
	if question.Position == 0 {
		next, err := s.questionRepo.NextPosition(ctx, question.PackageID)
		if err != nil {
			return nil, err
		}
		question.Position = next
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// Update replaces a question; it stays in its package
func (s *questionService) Update(ctx context.Context, actor users.Actor, question *catalog.Question) (*catalog.Question, error) {
	current, err := s.questionRepo.GetByID(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.managedPackage(ctx, actor, current.PackageID); err != nil {
		return nil, err
	}

	question.PackageID = current.PackageID
	if question.Position == 0 {
		question.Position = current.Position
	}
	if err := s.questionRepo.UpdateByID(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// Delete removes a question
func (s *questionService) Delete(ctx context.Context, actor users.Actor, questionID string) error {
	current, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if _, err := s.managedPackage(ctx, actor, current.PackageID); err != nil {
		return err
	}
	return s.questionRepo.DeleteByID(ctx, questionID)
}

// GetByID returns a full question to its package manager
func (s *questionService) GetByID(ctx context.Context, actor users.Actor, questionID string) (*catalog.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.managedPackage(ctx, actor, q.PackageID); err != nil {
		return nil, err
	}
	return q, nil
}

// ListByPackage returns the full questions of a managed package
func (s *questionService) ListByPackage(ctx context.Context, actor users.Actor, packageID string) ([]*catalog.Question, error) {
	if _, err := s.managedPackage(ctx, actor, packageID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByPackage(ctx, packageID)
}

// Import appends questions in order after the existing ones
func (s *questionService) Import(ctx context.Context, actor users.Actor, packageID string, questions []*catalog.Question) (int, error) {
	if _, err := s.managedPackage(ctx, actor, packageID); err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 0, nil
	}

	next, err := s.questionRepo.NextPosition(ctx, packageID)
	if err != nil {
		return 0, err
	}
	for i, q := range questions {
		q.ID = uuid.NewString()
		q.PackageID = packageID
		q.Position = next + i
	}

	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		return 0, fmt.Errorf("failed to import questions: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Imported %d questions into package %s", len(questions), packageID))
	return len(questions), nil
}
