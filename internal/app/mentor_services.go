package app

import (
	"context"
	"fmt"
	"time"

	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// mentorService implements the MentorService interface
type mentorService struct {
	mentorRepo    mentors.MentorRepository
	minWithdrawal int64
	now           func() time.Time
	logger        logger.Logger
}

// NewMentorService creates a new instance of MentorService
func NewMentorService(mentorRepo mentors.MentorRepository, settings *config.BillingSettings, logger logger.Logger) (mentors.MentorService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &mentorService{
		mentorRepo:    mentorRepo,
		minWithdrawal: settings.MinWithdrawal,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
	}, nil
}

// GetBalance returns the mentor's earnings
func (s *mentorService) GetBalance(ctx context.Context, actor users.Actor) (*mentors.Balance, error) {
	if !actor.IsMentor() {
		return nil, mentors.ErrNotMentor
	}
	return s.mentorRepo.GetBalance(ctx, actor.UserID)
}

// RequestWithdrawal debits the balance and files a pending payout
func (s *mentorService) RequestWithdrawal(ctx context.Context, actor users.Actor, req *mentors.WithdrawalRequest) (*mentors.Withdrawal, error) {
	if !actor.IsMentor() {
		return nil, mentors.ErrNotMentor
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if req.Amount < s.minWithdrawal {
		return nil, mentors.ErrBelowMinWithdrawal
	}

	withdrawal := mentors.NewWithdrawal(actor.UserID, req, s.now())
	if err := s.mentorRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
		return nil, fmt.Errorf("failed to request withdrawal: %w", err)
	}
	return withdrawal, nil
}

// Approve marks a pending withdrawal as paid out
func (s *mentorService) Approve(ctx context.Context, withdrawalID string) (*mentors.Withdrawal, error) {
	if err := s.mentorRepo.ApproveWithdrawal(ctx, withdrawalID, s.now()); err != nil {
		return nil, err
	}
	return s.mentorRepo.GetWithdrawal(ctx, withdrawalID)
}

// Reject refunds a pending withdrawal
func (s *mentorService) Reject(ctx context.Context, withdrawalID, note string) (*mentors.Withdrawal, error) {
	if err := s.mentorRepo.RejectWithdrawal(ctx, withdrawalID, note, s.now()); err != nil {
		return nil, err
	}
	return s.mentorRepo.GetWithdrawal(ctx, withdrawalID)
}

// ListWithdrawals scopes mentors to their own requests
func (s *mentorService) ListWithdrawals(ctx context.Context, actor users.Actor, query *mentors.WithdrawalQuery) ([]*mentors.Withdrawal, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsMentor():
		query.MentorID = actor.UserID
	default:
		return nil, mentors.ErrNotMentor
	}
	return s.mentorRepo.ListWithdrawals(ctx, query)
}

// SalesReport lists completed sales per package the mentor created
func (s *mentorService) SalesReport(ctx context.Context, actor users.Actor) ([]*mentors.SalesLine, error) {
	if !actor.IsMentor() {
		return nil, mentors.ErrNotMentor
	}
	return s.mentorRepo.SalesReport(ctx, actor.UserID)
}
