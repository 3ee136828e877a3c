package mentors

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Withdrawal statuses
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// Balance is what a mentor has earned from package sales
type Balance struct {
	MentorID       string    `json:"mentor_id"`
	Balance        int64     `json:"balance"`
	TotalEarned    int64     `json:"total_earned"`
	TotalWithdrawn int64     `json:"total_withdrawn"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WithdrawalRequest is a mentor's payout request
type WithdrawalRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	BankName      string `json:"bank_name" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,numeric,min=5,max=30"`
	AccountName   string `json:"account_name" validate:"required,max=100"`
}

// Validate for validating WithdrawalRequest struct
func (r *WithdrawalRequest) Validate() error {
	return validators.Struct(r)
}

// Withdrawal is a payout of mentor balance to a bank account
type Withdrawal struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	MentorID        string     `json:"mentor_id" validate:"required,uuid4"`
	Amount          int64      `json:"amount" validate:"required,gt=0"`
	BankName        string     `json:"bank_name" validate:"required,max=100"`
	AccountNumber   string     `json:"account_number" validate:"required,max=30"`
	AccountName     string     `json:"account_name" validate:"required,max=100"`
	Status          string     `json:"status" validate:"required,oneof=pending approved rejected"`
	Note            string     `json:"note" validate:"max=500"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
}

// NewWithdrawal creates a pending withdrawal from req
func NewWithdrawal(mentorID string, req *WithdrawalRequest, now time.Time) *Withdrawal {
	return &Withdrawal{
		ID:              uuid.NewString(),
		MentorID:        mentorID,
		Amount:          req.Amount,
		BankName:        strings.TrimSpace(req.BankName),
		AccountNumber:   strings.TrimSpace(req.AccountNumber),
		AccountName:     strings.TrimSpace(req.AccountName),
		Status:          WithdrawalPending,
		DateTimeCreated: now,
	}
}

// Validate for validating Withdrawal struct
func (w *Withdrawal) Validate() error {
	return validators.Struct(w)
}

// WithdrawalQuery filters withdrawal listings
type WithdrawalQuery struct {
	MentorID string `validate:"omitempty,uuid4"`
	Status   string `validate:"omitempty,oneof=pending approved rejected"`
	Limit    int    `validate:"gte=0,lte=200"`
	Offset   int    `validate:"gte=0"`
}

// Validate for validating WithdrawalQuery struct
func (q *WithdrawalQuery) Validate() error {
	return validators.Struct(q)
}

// SalesLine is the completed sales of one package created by a mentor
type SalesLine struct {
	PackageID string `json:"package_id"`
	Title     string `json:"title"`
	Sales     int64  `json:"sales"`
	Revenue   int64  `json:"revenue"`
}
