package catalog

import (
	"context"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// PackageService manages question packages and decides who may take them.
type PackageService interface {
	Create(ctx context.Context, actor users.Actor, pkg *Package) (*Package, error)
	Update(ctx context.Context, actor users.Actor, pkg *Package) (*Package, error)
	// Delete removes the package together with its questions.
	Delete(ctx context.Context, actor users.Actor, packageID string) error
	List(ctx context.Context, query *PackageQuery) ([]*Package, error)
	GetByID(ctx context.Context, packageID string) (*Package, error)
	// HasAccess reports whether actor may start a tryout of the package.
	HasAccess(ctx context.Context, actor users.Actor, pkg *Package) (bool, error)
}

// QuestionService manages the questions of a package.
type QuestionService interface {
	Create(ctx context.Context, actor users.Actor, question *Question) (*Question, error)
	Update(ctx context.Context, actor users.Actor, question *Question) (*Question, error)
	Delete(ctx context.Context, actor users.Actor, questionID string) error
	GetByID(ctx context.Context, actor users.Actor, questionID string) (*Question, error)
	// ListByPackage returns full questions, answers included, to the package manager.
	ListByPackage(ctx context.Context, actor users.Actor, packageID string) ([]*Question, error)
	// Import appends questions to a package in one batch and returns how many were stored.
	Import(ctx context.Context, actor users.Actor, packageID string, questions []*Question) (int, error)
}

// PurchaseChecker answers whether a user owns a completed purchase of a package
type PurchaseChecker interface {
	HasCompletedPurchase(ctx context.Context, userID, packageID string) (bool, error)
}

// PackageRepository defines the interface for Package-related operations
type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, packageID string) (*Package, error)
	List(ctx context.Context, query *PackageQuery) ([]*Package, error)
	UpdateByID(ctx context.Context, pkg *Package) error
	// DeleteByID deletes the package and its questions
	DeleteByID(ctx context.Context, packageID string) error
}

// QuestionRepository defines the interface for Question-related operations
type QuestionRepository interface {
	Create(ctx context.Context, question *Question) error
	CreateBatch(ctx context.Context, questions []*Question) error
	GetByID(ctx context.Context, questionID string) (*Question, error)
	// ListByPackage returns questions ordered by position
	ListByPackage(ctx context.Context, packageID string) ([]*Question, error)
	NextPosition(ctx context.Context, packageID string) (int, error)
	// PackageIDsByImage lists the packages whose questions show the image
	PackageIDsByImage(ctx context.Context, mediaID string) ([]string, error)
	UpdateByID(ctx context.Context, question *Question) error
	DeleteByID(ctx context.Context, questionID string) error
}
