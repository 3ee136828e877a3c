package billing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment is one purchase attempt of a package
type Payment struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	OrderID         string     `json:"order_id" validate:"required,max=64"`
	UserID          string     `json:"user_id" validate:"required,uuid4"`
	PackageID       string     `json:"package_id" validate:"required,uuid4"`
	Amount          int64      `json:"amount" validate:"gte=0"`
	Discount        int64      `json:"discount" validate:"gte=0,ltefield=Amount"`
	FinalAmount     int64      `json:"final_amount" validate:"gte=0"`
	VoucherID       *string    `json:"voucher_id,omitempty" validate:"omitempty,uuid4"`
	Status          string     `json:"status" validate:"required,oneof=pending completed failed"`
	CheckoutToken   string     `json:"checkout_token,omitempty" validate:"max=255"`
	RedirectURL     string     `json:"redirect_url,omitempty" validate:"omitempty,url"`
	ProofMediaID    *string    `json:"proof_media_id,omitempty" validate:"omitempty,uuid4"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

// NewPayment prices a pending purchase. The discount is capped at amount.
func NewPayment(userID, packageID string, amount, discount int64, now time.Time) *Payment {
	if discount > amount {
		discount = amount
	}
	return &Payment{
		ID:              uuid.NewString(),
		OrderID:         NewOrderID(now),
		UserID:          userID,
		PackageID:       packageID,
		Amount:          amount,
		Discount:        discount,
		FinalAmount:     amount - discount,
		Status:          PaymentPending,
		DateTimeCreated: now,
	}
}

// NewOrderID returns an order reference of the form SKD-20060102-1a2b3c4d
func NewOrderID(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		copy(buf, uuid.New().NodeID())
	}
	return fmt.Sprintf("SKD-%s-%s", now.UTC().Format("20060102"), hex.EncodeToString(buf))
}

// Validate for validating Payment struct
func (p *Payment) Validate() error {
	if err := validators.Struct(p); err != nil {
		return err
	}
	if p.FinalAmount != p.Amount-p.Discount {
		return validators.Field("final_amount", "final_amount must equal amount minus discount")
	}
	return nil
}

func (p *Payment) IsPending() bool { return p.Status == PaymentPending }

// PaymentQuery filters payment listings
type PaymentQuery struct {
	UserID    string `validate:"omitempty,uuid4"`
	PackageID string `validate:"omitempty,uuid4"`
	Status    string `validate:"omitempty,oneof=pending completed failed"`
	Limit     int    `validate:"gte=0,lte=200"`
	Offset    int    `validate:"gte=0"`
}

// NewPaymentQuery returns a query with the default page size
func NewPaymentQuery() *PaymentQuery {
	return &PaymentQuery{Limit: 50}
}

// Validate for validating PaymentQuery struct
func (q *PaymentQuery) Validate() error {
	return validators.Struct(q)
}

// Settlement is everything written when a pending payment completes
type Settlement struct {
	Payment *Payment
	PaidAt  time.Time
	// MentorID and Commission are set when the package creator is a mentor.
	MentorID   string
	Commission int64
}

// CheckoutSession is what a gateway hands back for a pending payment
type CheckoutSession struct {
	Token        string `json:"token"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// CheckoutResult is the outcome of a checkout. Session is nil when the
// payment settled immediately because nothing was left to pay.
type CheckoutResult struct {
	Payment *Payment
	Session *CheckoutSession
}

// Notification statuses sent by a gateway
const (
	NotificationSettlement = "settlement"
	NotificationCapture    = "capture"
	NotificationDeny       = "deny"
	NotificationCancel     = "cancel"
	NotificationExpire     = "expire"
)

// Notification is a signed status callback from the payment gateway
type Notification struct {
	OrderID           string `json:"order_id" validate:"required,max=64"`
	TransactionStatus string `json:"transaction_status" validate:"required,oneof=settlement capture deny cancel expire pending"`
	Signature         string `json:"signature" validate:"required,hexadecimal"`
}

// Validate for validating Notification struct
func (n *Notification) Validate() error {
	return validators.Struct(n)
}
