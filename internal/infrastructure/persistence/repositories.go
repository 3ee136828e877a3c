package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// Repositories holds every gorm backed repository sharing one connection
type Repositories struct {
	UserRepo     users.UserRepository
	PackageRepo  catalog.PackageRepository
	QuestionRepo catalog.QuestionRepository
	SessionRepo  tryout.SessionRepository
	AnswerRepo   tryout.AnswerRepository
	TagStatRepo  tryout.TagStatRepository
	PaymentRepo  billing.PaymentRepository
	VoucherRepo  billing.VoucherRepository
	MentorRepo   mentors.MentorRepository
	ChatRepo     chat.ChatRepository
	MediaRepo    media.MediaRepository
	StatsRepo    dashboard.StatsRepository
}

// NewRepositories builds all repositories on db
func NewRepositories(db *gorm.DB, logger logger.Logger) (*Repositories, error) {
	var (
		r   Repositories
		err error
	)

	if r.UserRepo, err = NewGormUserRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	if r.PackageRepo, err = NewGormPackageRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create package repository: %w", err)
	}
	if r.QuestionRepo, err = NewGormQuestionRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create question repository: %w", err)
	}
	if r.SessionRepo, err = NewGormSessionRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}
	if r.AnswerRepo, err = NewGormAnswerRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create answer repository: %w", err)
	}
	if r.TagStatRepo, err = NewGormTagStatRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create tag stat repository: %w", err)
	}
	if r.PaymentRepo, err = NewGormPaymentRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create payment repository: %w", err)
	}
	if r.VoucherRepo, err = NewGormVoucherRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create voucher repository: %w", err)
	}
	if r.MentorRepo, err = NewGormMentorRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create mentor repository: %w", err)
	}
	if r.ChatRepo, err = NewGormChatRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create chat repository: %w", err)
	}
	if r.MediaRepo, err = NewGormMediaRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create media repository: %w", err)
	}
	if r.StatsRepo, err = NewGormStatsRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create stats repository: %w", err)
	}
	return &r, nil
}
