package app

import (
	"fmt"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// Dependencies are the infrastructure components the services are built on
type Dependencies struct {
	Repositories   *persistence.Repositories
	MediaConnector media.MediaConnector
	Gateway        billing.CheckoutGateway
	Issuer         users.TokenIssuer
	Auth           config.AuthSettings
	Tryout         config.TryoutSettings
	Billing        *config.BillingSettings
	MaxUploadBytes int64
}

// Services groups every application service
type Services struct {
	Auth      users.AuthService
	UserAdmin users.UserAdminService
	Packages  catalog.PackageService
	Questions catalog.QuestionService
	Tryouts   tryout.TryoutService
	Vouchers  billing.VoucherService
	Payments  billing.PaymentService
	Mentors   mentors.MentorService
	Chat      chat.ChatService
	Media     media.MediaService
	Stats     dashboard.StatsService
}

// NewServices wires all application services from deps
func NewServices(deps Dependencies, logger logger.Logger) (*Services, error) {
	repos := deps.Repositories
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}

	var (
		s   Services
		err error
	)

	if s.Auth, err = NewAuthService(repos.UserRepo, deps.Issuer, deps.Auth.BcryptCost, logger); err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	if s.UserAdmin, err = NewUserAdminService(repos.UserRepo, deps.Auth.BcryptCost, logger); err != nil {
		return nil, fmt.Errorf("failed to create user admin service: %w", err)
	}
	if s.Packages, err = NewPackageService(repos.PackageRepo, repos.PaymentRepo, deps.Tryout, logger); err != nil {
		return nil, fmt.Errorf("failed to create package service: %w", err)
	}
	if s.Questions, err = NewQuestionService(repos.PackageRepo, repos.QuestionRepo, logger); err != nil {
		return nil, fmt.Errorf("failed to create question service: %w", err)
	}
	s.Tryouts, err = NewTryoutService(
		repos.PackageRepo,
		repos.QuestionRepo,
		s.Packages,
		repos.SessionRepo,
		repos.AnswerRepo,
		repos.TagStatRepo,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tryout service: %w", err)
	}
	if s.Vouchers, err = NewVoucherService(repos.VoucherRepo, logger); err != nil {
		return nil, fmt.Errorf("failed to create voucher service: %w", err)
	}
	s.Payments, err = NewPaymentService(
		repos.PaymentRepo,
		repos.PackageRepo,
		repos.UserRepo,
		repos.MediaRepo,
		s.Vouchers,
		deps.Gateway,
		deps.Billing,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}
	if s.Mentors, err = NewMentorService(repos.MentorRepo, deps.Billing, logger); err != nil {
		return nil, fmt.Errorf("failed to create mentor service: %w", err)
	}
	if s.Chat, err = NewChatService(repos.ChatRepo, repos.UserRepo, logger); err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}
	if s.Media, err = NewMediaService(repos.MediaRepo, deps.MediaConnector, repos.PackageRepo, repos.QuestionRepo, s.Packages, deps.MaxUploadBytes, logger); err != nil {
		return nil, fmt.Errorf("failed to create media service: %w", err)
	}
	if s.Stats, err = NewStatsService(repos.StatsRepo, logger); err != nil {
		return nil, fmt.Errorf("failed to create stats service: %w", err)
	}
	return &s, nil
}
