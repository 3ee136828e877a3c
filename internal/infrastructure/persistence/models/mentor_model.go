package models

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/mentors"
)

// MentorBalanceModel is the GORM database model for mentor earnings
type MentorBalanceModel struct {
	MentorID       string    `gorm:"primaryKey;type:uuid"`
	Balance        int64     `gorm:"not null;default:0"`
	TotalEarned    int64     `gorm:"not null;default:0"`
	TotalWithdrawn int64     `gorm:"not null;default:0"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MentorBalanceModel) TableName() string {
	return "mentor_balances"
}

// ToDomain converts GORM model to domain entity
func (m *MentorBalanceModel) ToDomain() *mentors.Balance {
	return &mentors.Balance{
		MentorID:       m.MentorID,
		Balance:        m.Balance,
		TotalEarned:    m.TotalEarned,
		TotalWithdrawn: m.TotalWithdrawn,
		UpdatedAt:      m.UpdatedAt,
	}
}

// MentorWithdrawalModel is the GORM database model for payout requests
type MentorWithdrawalModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	MentorID        string    `gorm:"not null;index;type:uuid"`
	Amount          int64     `gorm:"not null"`
	BankName        string    `gorm:"not null;type:varchar(100)"`
	AccountNumber   string    `gorm:"not null;type:varchar(30)"`
	AccountName     string    `gorm:"not null;type:varchar(100)"`
	Status          string    `gorm:"not null;index;type:varchar(20)"`
	Note            string    `gorm:"type:varchar(500)"`
	DateTimeCreated time.Time `gorm:"not null"`
	ProcessedAt     *time.Time
}

// TableName specifies the table name for GORM
func (MentorWithdrawalModel) TableName() string {
	return "mentor_withdrawals"
}

// ToDomain converts GORM model to domain entity
func (m *MentorWithdrawalModel) ToDomain() *mentors.Withdrawal {
	return &mentors.Withdrawal{
		ID:              m.ID,
		MentorID:        m.MentorID,
		Amount:          m.Amount,
		BankName:        m.BankName,
		AccountNumber:   m.AccountNumber,
		AccountName:     m.AccountName,
		Status:          m.Status,
		Note:            m.Note,
		DateTimeCreated: m.DateTimeCreated,
		ProcessedAt:     m.ProcessedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MentorWithdrawalModel) FromDomain(w *mentors.Withdrawal) {
	m.ID = w.ID
	m.MentorID = w.MentorID
	m.Amount = w.Amount
	m.BankName = w.BankName
	m.AccountNumber = w.AccountNumber
	m.AccountName = w.AccountName
	m.Status = w.Status
	m.Note = w.Note
	m.DateTimeCreated = w.DateTimeCreated
	m.ProcessedAt = w.ProcessedAt
}
