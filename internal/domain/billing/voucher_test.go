//go:build unit
// +build unit

package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newVoucher() *Voucher {
	return NewVoucher(&Voucher{
		Code:          " hemat-50 ",
		DiscountType:  DiscountPercent,
		DiscountValue: 50,
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		IsActive:      true,
	}, now)
}

func TestVoucher_DiscountFor(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(v *Voucher)
		amount   int64
		expected int64
	}{
		{"percent", func(v *Voucher) {}, 100000, 50000},
		{"percent capped", func(v *Voucher) { v.MaxDiscount = 20000 }, 100000, 20000},
		{"fixed", func(v *Voucher) { v.DiscountType, v.DiscountValue = DiscountFixed, 15000 }, 100000, 15000},
		{"fixed above amount", func(v *Voucher) { v.DiscountType, v.DiscountValue = DiscountFixed, 150000 }, 100000, 100000},
		{"full percent", func(v *Voucher) { v.DiscountValue = 100 }, 75000, 75000},
		{"free package", func(v *Voucher) {}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVoucher()
			tt.mutate(v)
			assert.Equal(t, tt.expected, v.DiscountFor(tt.amount))
		})
	}
}

func TestVoucher_CheckUsable(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(v *Voucher)
		at       time.Time
		amount   int64
		expected error
	}{
		{"usable", func(v *Voucher) {}, now, 50000, nil},
		{"inactive", func(v *Voucher) { v.IsActive = false }, now, 50000, ErrVoucherInactive},
		{"not started", func(v *Voucher) {}, now.Add(-48 * time.Hour), 50000, ErrVoucherNotStarted},
		{"expired at boundary", func(v *Voucher) {}, now.Add(24 * time.Hour), 50000, ErrVoucherExpired},
		{"exhausted", func(v *Voucher) { v.MaxUses, v.UsedCount = 3, 3 }, now, 50000, ErrVoucherExhausted},
		{"unlimited uses", func(v *Voucher) { v.MaxUses, v.UsedCount = 0, 999 }, now, 50000, nil},
		{"below minimum", func(v *Voucher) { v.MinPurchase = 60000 }, now, 50000, ErrBelowMinPurchase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVoucher()
			tt.mutate(v)
			err := v.CheckUsable(tt.at, tt.amount)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestVoucher_Validate(t *testing.T) {
	v := newVoucher()
	require.NoError(t, v.Validate())
	assert.Equal(t, "HEMAT-50", v.Code)

	v.DiscountValue = 120
	assert.Error(t, v.Validate())

	v = newVoucher()
	v.ValidUntil = v.ValidFrom
	assert.Error(t, v.Validate())

	v = newVoucher()
	v.Code = "A!"
	assert.Error(t, v.Validate())
}

func TestNewPayment(t *testing.T) {
	p := NewPayment("8c5b6c9e-9d47-4d0f-8f3e-2a1c3c2f1b10", "1f0e9d8c-7b6a-4594-8372-615049382716", 100000, 150000, now)

	assert.Equal(t, int64(100000), p.Discount)
	assert.Equal(t, int64(0), p.FinalAmount)
	assert.Equal(t, PaymentPending, p.Status)
	assert.Regexp(t, `^SKD-20260301-[0-9a-f]{8}$`, p.OrderID)
	assert.NoError(t, p.Validate())
}
