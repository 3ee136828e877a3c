package billing

import (
	"context"
	"time"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// VoucherService manages discount codes
type VoucherService interface {
	Create(ctx context.Context, voucher *Voucher) (*Voucher, error)
	Update(ctx context.Context, voucher *Voucher) (*Voucher, error)
	DeleteByID(ctx context.Context, voucherID string) error
	GetByID(ctx context.Context, voucherID string) (*Voucher, error)
	List(ctx context.Context, query *VoucherQuery) ([]*Voucher, error)
	// Quote checks code for userID and returns the voucher with its discount on amount.
	Quote(ctx context.Context, code, userID string, amount int64) (*Voucher, int64, error)
}

// PaymentService sells packages
type PaymentService interface {
	// Checkout prices a package purchase and starts payment at the gateway.
	Checkout(ctx context.Context, actor users.Actor, packageID, voucherCode string) (*CheckoutResult, error)
	// AttachProof links an uploaded transfer receipt to a pending payment.
	AttachProof(ctx context.Context, actor users.Actor, paymentID, mediaID string) (*Payment, error)
	// HandleNotification applies a signed gateway status callback.
	HandleNotification(ctx context.Context, notification *Notification) (*Payment, error)
	// Confirm settles a pending payment on behalf of an admin.
	Confirm(ctx context.Context, paymentID string) (*Payment, error)
	Fail(ctx context.Context, paymentID string) (*Payment, error)
	// Cancel lets a buyer abandon their own pending payment.
	Cancel(ctx context.Context, actor users.Actor, paymentID string) (*Payment, error)
	GetByID(ctx context.Context, actor users.Actor, paymentID string) (*Payment, error)
	List(ctx context.Context, query *PaymentQuery) ([]*Payment, error)
}

// CheckoutGateway starts and verifies payments with an external processor
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, payment *Payment) (*CheckoutSession, error)
	// VerifyNotification returns ErrInvalidSignature when the callback is not authentic.
	VerifyNotification(notification *Notification) error
}

// PaymentRepository defines the interface for Payment-related operations
type PaymentRepository interface {
	// Create stores a pending payment. A non-nil reservation claims one use of
	// its voucher in the same transaction and fails with ErrVoucherAlreadyUsed or
	// ErrVoucherExhausted when the claim is not possible.
	Create(ctx context.Context, payment *Payment, reservation *VoucherUsage) error
	GetByID(ctx context.Context, paymentID string) (*Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
	// FindPending returns the pending payment of user for package or ErrPaymentNotFound.
	FindPending(ctx context.Context, userID, packageID string) (*Payment, error)
	HasCompletedPurchase(ctx context.Context, userID, packageID string) (bool, error)
	List(ctx context.Context, query *PaymentQuery) ([]*Payment, error)
	UpdateByID(ctx context.Context, payment *Payment) error
	// Settle completes a pending payment and credits the mentor in one
	// transaction. It returns ErrPaymentNotPending when the payment was already
	// settled or failed.
	Settle(ctx context.Context, settlement *Settlement) error
	// MarkFailed moves a pending payment to failed and releases its voucher
	// reservation, or returns ErrPaymentNotPending.
	MarkFailed(ctx context.Context, paymentID string, at time.Time) error
}

// VoucherRepository defines the interface for Voucher-related operations
type VoucherRepository interface {
	Create(ctx context.Context, voucher *Voucher) error
	GetByID(ctx context.Context, voucherID string) (*Voucher, error)
	GetByCode(ctx context.Context, code string) (*Voucher, error)
	List(ctx context.Context, query *VoucherQuery) ([]*Voucher, error)
	UpdateByID(ctx context.Context, voucher *Voucher) error
	DeleteByID(ctx context.Context, voucherID string) error
	HasUsage(ctx context.Context, voucherID, userID string) (bool, error)
}
