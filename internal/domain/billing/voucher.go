package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Discount types
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Voucher is a discount code redeemable once per user
type Voucher struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	Code            string    `json:"code" validate:"required,vouchercode"`
	Description     string    `json:"description" validate:"max=500"`
	DiscountType    string    `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue   int64     `json:"discount_value" validate:"required,gt=0"`
	MaxDiscount     int64     `json:"max_discount" validate:"gte=0"`
	MinPurchase     int64     `json:"min_purchase" validate:"gte=0"`
	MaxUses         int       `json:"max_uses" validate:"gte=0"`
	UsedCount       int       `json:"used_count" validate:"gte=0"`
	ValidFrom       time.Time `json:"valid_from" validate:"required"`
	ValidUntil      time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	IsActive        bool      `json:"is_active"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
}

// NewVoucher fills identity and bookkeeping fields of v
func NewVoucher(v *Voucher, now time.Time) *Voucher {
	v.ID = uuid.NewString()
	v.Code = NormalizeCode(v.Code)
	v.UsedCount = 0
	v.DateTimeCreated = now
	return v
}

// NormalizeCode upper-cases and trims a voucher code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate for validating Voucher struct
func (v *Voucher) Validate() error {
	if err := validators.Struct(v); err != nil {
		return err
	}
	if v.DiscountType == DiscountPercent && v.DiscountValue > 100 {
		return validators.Field("discount_value", "percent discount must be between 1 and 100")
	}
	return nil
}

// Exhausted reports whether every allowed use has been redeemed
func (v *Voucher) Exhausted() bool {
	return v.MaxUses > 0 && v.UsedCount >= v.MaxUses
}

// CheckUsable returns why v cannot discount a purchase of amount at now, or nil.
// Per user reuse is checked against stored usages by the caller.
func (v *Voucher) CheckUsable(now time.Time, amount int64) error {
	switch {
	case !v.IsActive:
		return ErrVoucherInactive
	case now.Before(v.ValidFrom):
		return ErrVoucherNotStarted
	case !now.Before(v.ValidUntil):
		return ErrVoucherExpired
	case v.Exhausted():
		return ErrVoucherExhausted
	case amount < v.MinPurchase:
		return ErrBelowMinPurchase
	}
	return nil
}

// DiscountFor computes the discount on amount. Percent discounts are capped by
// MaxDiscount when it is set, and no discount exceeds amount.
func (v *Voucher) DiscountFor(amount int64) int64 {
	var d int64
	switch v.DiscountType {
	case DiscountPercent:
		d = amount * v.DiscountValue / 100
		if v.MaxDiscount > 0 && d > v.MaxDiscount {
			d = v.MaxDiscount
		}
	case DiscountFixed:
		d = v.DiscountValue
	}
	if d > amount {
		d = amount
	}
	if d < 0 {
		d = 0
	}
	return d
}

// VoucherUsage records one redemption
type VoucherUsage struct {
	ID        string    `json:"id"`
	VoucherID string    `json:"voucher_id"`
	UserID    string    `json:"user_id"`
	PaymentID string    `json:"payment_id"`
	Discount  int64     `json:"discount"`
	UsedAt    time.Time `json:"used_at"`
}

// VoucherQuery filters voucher listings
type VoucherQuery struct {
	Code       string `validate:"omitempty,max=32"`
	ActiveOnly bool
	Limit      int `validate:"gte=0,lte=200"`
	Offset     int `validate:"gte=0"`
}

// Validate for validating VoucherQuery struct
func (q *VoucherQuery) Validate() error {
	return validators.Struct(q)
}
