package models

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/billing"
)

// PaymentModel is the GORM database model for payments
type PaymentModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	OrderID         string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	UserID          string    `gorm:"not null;index:idx_payments_user_package,priority:1;type:uuid"`
	PackageID       string    `gorm:"not null;index:idx_payments_user_package,priority:2;type:uuid"`
	Amount          int64     `gorm:"not null"`
	Discount        int64     `gorm:"not null;default:0"`
	FinalAmount     int64     `gorm:"not null"`
	VoucherID       *string   `gorm:"type:uuid"`
	Status          string    `gorm:"not null;index;type:varchar(20)"`
	CheckoutToken   string    `gorm:"type:varchar(255)"`
	RedirectURL     string    `gorm:"type:varchar(500)"`
	ProofMediaID    *string   `gorm:"type:uuid"`
	DateTimeCreated time.Time `gorm:"not null"`
	PaidAt          *time.Time
}

// TableName specifies the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts GORM model to domain entity
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		ID:              m.ID,
		OrderID:         m.OrderID,
		UserID:          m.UserID,
		PackageID:       m.PackageID,
		Amount:          m.Amount,
		Discount:        m.Discount,
		FinalAmount:     m.FinalAmount,
		VoucherID:       m.VoucherID,
		Status:          m.Status,
		CheckoutToken:   m.CheckoutToken,
		RedirectURL:     m.RedirectURL,
		ProofMediaID:    m.ProofMediaID,
		DateTimeCreated: m.DateTimeCreated,
		PaidAt:          m.PaidAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.ID = p.ID
	m.OrderID = p.OrderID
	m.UserID = p.UserID
	m.PackageID = p.PackageID
	m.Amount = p.Amount
	m.Discount = p.Discount
	m.FinalAmount = p.FinalAmount
	m.VoucherID = p.VoucherID
	m.Status = p.Status
	m.CheckoutToken = p.CheckoutToken
	m.RedirectURL = p.RedirectURL
	m.ProofMediaID = p.ProofMediaID
	m.DateTimeCreated = p.DateTimeCreated
	m.PaidAt = p.PaidAt
}

// VoucherModel is the GORM database model for discount codes
type VoucherModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Code            string    `gorm:"not null;uniqueIndex;type:varchar(32)"`
	Description     string    `gorm:"type:varchar(500)"`
	DiscountType    string    `gorm:"not null;type:varchar(10)"`
	DiscountValue   int64     `gorm:"not null"`
	MaxDiscount     int64     `gorm:"not null;default:0"`
	MinPurchase     int64     `gorm:"not null;default:0"`
	MaxUses         int       `gorm:"not null;default:0"`
	UsedCount       int       `gorm:"not null;default:0"`
	ValidFrom       time.Time `gorm:"not null"`
	ValidUntil      time.Time `gorm:"not null"`
	IsActive        bool      `gorm:"not null;default:true"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// ToDomain converts GORM model to domain entity
func (m *VoucherModel) ToDomain() *billing.Voucher {
	return &billing.Voucher{
		ID:              m.ID,
		Code:            m.Code,
		Description:     m.Description,
		DiscountType:    m.DiscountType,
		DiscountValue:   m.DiscountValue,
		MaxDiscount:     m.MaxDiscount,
		MinPurchase:     m.MinPurchase,
		MaxUses:         m.MaxUses,
		UsedCount:       m.UsedCount,
		ValidFrom:       m.ValidFrom,
		ValidUntil:      m.ValidUntil,
		IsActive:        m.IsActive,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *VoucherModel) FromDomain(v *billing.Voucher) {
	m.ID = v.ID
	m.Code = v.Code
	m.Description = v.Description
	m.DiscountType = v.DiscountType
	m.DiscountValue = v.DiscountValue
	m.MaxDiscount = v.MaxDiscount
	m.MinPurchase = v.MinPurchase
	m.MaxUses = v.MaxUses
	m.UsedCount = v.UsedCount
	m.ValidFrom = v.ValidFrom
	m.ValidUntil = v.ValidUntil
	m.IsActive = v.IsActive
	m.DateTimeCreated = v.DateTimeCreated
}

// VoucherUsageModel is the GORM database model for voucher redemptions.
// A row is written when a checkout reserves the voucher and removed when that
// payment fails. The unique index enforces one redemption per user.
type VoucherUsageModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	VoucherID string    `gorm:"not null;uniqueIndex:idx_voucher_usages_voucher_user,priority:1;type:uuid"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_voucher_usages_voucher_user,priority:2;type:uuid"`
	PaymentID string    `gorm:"not null;uniqueIndex;type:uuid"`
	Discount  int64     `gorm:"not null"`
	UsedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (VoucherUsageModel) TableName() string {
	return "voucher_usages"
}

// FromDomain converts domain entity to GORM model
func (m *VoucherUsageModel) FromDomain(u *billing.VoucherUsage) {
	m.ID = u.ID
	m.VoucherID = u.VoucherID
	m.UserID = u.UserID
	m.PaymentID = u.PaymentID
	m.Discount = u.Discount
	m.UsedAt = u.UsedAt
}
