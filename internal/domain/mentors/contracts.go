package mentors

import (
	"context"
	"time"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// MentorService handles mentor earnings and payouts
type MentorService interface {
	GetBalance(ctx context.Context, actor users.Actor) (*Balance, error)
	// RequestWithdrawal debits the balance right away; rejection refunds it.
	RequestWithdrawal(ctx context.Context, actor users.Actor, req *WithdrawalRequest) (*Withdrawal, error)
	Approve(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	Reject(ctx context.Context, withdrawalID, note string) (*Withdrawal, error)
	// ListWithdrawals shows mentors their own requests and admins every request.
	ListWithdrawals(ctx context.Context, actor users.Actor, query *WithdrawalQuery) ([]*Withdrawal, error)
	SalesReport(ctx context.Context, actor users.Actor) ([]*SalesLine, error)
}

// MentorRepository defines the interface for balance and withdrawal operations
type MentorRepository interface {
	// GetBalance returns a zero balance for mentors without earnings yet.
	GetBalance(ctx context.Context, mentorID string) (*Balance, error)
	// CreateWithdrawal debits the balance and stores the withdrawal atomically,
	// failing with ErrInsufficientBalance when the balance does not cover it.
	CreateWithdrawal(ctx context.Context, withdrawal *Withdrawal) error
	GetWithdrawal(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	ListWithdrawals(ctx context.Context, query *WithdrawalQuery) ([]*Withdrawal, error)
	// ApproveWithdrawal marks a pending withdrawal paid out.
	ApproveWithdrawal(ctx context.Context, withdrawalID string, at time.Time) error
	// RejectWithdrawal marks a pending withdrawal rejected and refunds the balance.
	RejectWithdrawal(ctx context.Context, withdrawalID, note string, at time.Time) error
	SalesReport(ctx context.Context, mentorID string) ([]*SalesLine, error)
}
