package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// voucherService implements the VoucherService interface
type voucherService struct {
	voucherRepo billing.VoucherRepository
	now         func() time.Time
	logger      logger.Logger
}

// NewVoucherService creates a new instance of VoucherService
func NewVoucherService(voucherRepo billing.VoucherRepository, logger logger.Logger) (billing.VoucherService, error) {
	return &voucherService{
		voucherRepo: voucherRepo,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}, nil
}

// Create stores a new voucher with an upper-cased code
func (s *voucherService) Create(ctx context.Context, voucher *billing.Voucher) (*billing.Voucher, error) {
	billing.NewVoucher(voucher, s.now())
	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	return voucher, nil
}

// Update replaces the editable fields of a voucher
func (s *voucherService) Update(ctx context.Context, voucher *billing.Voucher) (*billing.Voucher, error) {
	current, err := s.voucherRepo.GetByID(ctx, voucher.ID)
	if err != nil {
		return nil, err
	}

	voucher.Code = billing.NormalizeCode(voucher.Code)
	voucher.UsedCount = current.UsedCount
	voucher.DateTimeCreated = current.DateTimeCreated
	if err := s.voucherRepo.UpdateByID(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}
	return voucher, nil
}

// DeleteByID removes a voucher
func (s *voucherService) DeleteByID(ctx context.Context, voucherID string) error {
	return s.voucherRepo.DeleteByID(ctx, voucherID)
}

// GetByID returns a voucher
func (s *voucherService) GetByID(ctx context.Context, voucherID string) (*billing.Voucher, error) {
	return s.voucherRepo.GetByID(ctx, voucherID)
}

// List returns vouchers matching the query
func (s *voucherService) List(ctx context.Context, query *billing.VoucherQuery) ([]*billing.Voucher, error) {
	return s.voucherRepo.List(ctx, query)
}

// Quote checks that userID may redeem code on amount and returns the discount
func (s *voucherService) Quote(ctx context.Context, code, userID string, amount int64) (*billing.Voucher, int64, error) {
	voucher, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	if err := voucher.CheckUsable(s.now(), amount); err != nil {
		return nil, 0, err
	}

	used, err := s.voucherRepo.HasUsage(ctx, voucher.ID, userID)
	if err != nil {
		return nil, 0, err
	}
	if used {
		return nil, 0, billing.ErrVoucherAlreadyUsed
	}
	return voucher, voucher.DiscountFor(amount), nil
}

// paymentService implements the PaymentService interface
type paymentService struct {
	paymentRepo billing.PaymentRepository
	packageRepo catalog.PackageRepository
	userRepo    users.UserRepository
	mediaRepo   media.MediaRepository
	vouchers    billing.VoucherService
	gateway     billing.CheckoutGateway
	settings    *config.BillingSettings
	now         func() time.Time
	logger      logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	packageRepo catalog.PackageRepository,
	userRepo users.UserRepository,
	mediaRepo media.MediaRepository,
	vouchers billing.VoucherService,
	gateway billing.CheckoutGateway,
	settings *config.BillingSettings,
	logger logger.Logger,
) (billing.PaymentService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &paymentService{
		paymentRepo: paymentRepo,
		packageRepo: packageRepo,
		userRepo:    userRepo,
		mediaRepo:   mediaRepo,
		vouchers:    vouchers,
		gateway:     gateway,
		settings:    settings,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}, nil
}

// Checkout prices a purchase and opens it at the gateway. A pending payment
// for the same package is reused and a zero total settles right away.
func (s *paymentService) Checkout(ctx context.Context, actor users.Actor, packageID, voucherCode string) (*billing.CheckoutResult, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive || pkg.IsFree() {
		return nil, billing.ErrPackageNotForSale
	}

	bought, err := s.paymentRepo.HasCompletedPurchase(ctx, actor.UserID, packageID)
	if err != nil {
		return nil, err
	}
	if bought {
		return nil, billing.ErrAlreadyPurchased
	}

	pending, err := s.paymentRepo.FindPending(ctx, actor.UserID, packageID)
	switch {
	case err == nil:
		if s.keepsVoucher(ctx, pending, voucherCode) {
			session, err := s.gateway.CreateCheckout(ctx, pending)
			if err != nil {
				return nil, fmt.Errorf("failed to resume checkout: %w", err)
			}
			return &billing.CheckoutResult{Payment: pending, Session: session}, nil
		}
	case !errors.Is(err, billing.ErrPaymentNotFound):
		return nil, err
	}

	var voucherID *string
	var discount int64
	if voucherCode != "" {
		voucher, d, err := s.vouchers.Quote(ctx, voucherCode, actor.UserID, pkg.Price)
		if err != nil {
			return nil, err
		}
		voucherID, discount = &voucher.ID, d
	}

	// a pending payment with a different voucher is replaced
	if pending != nil {
		if _, err := s.fail(ctx, pending); err != nil && !errors.Is(err, billing.ErrPaymentNotPending) {
			return nil, fmt.Errorf("failed to replace pending payment: %w", err)
		}
	}

	now := s.now()
	payment := billing.NewPayment(actor.UserID, pkg.ID, pkg.Price, discount, now)
	payment.VoucherID = voucherID

	var reservation *billing.VoucherUsage
	if voucherID != nil {
		reservation = &billing.VoucherUsage{
			ID:        uuid.NewString(),
			VoucherID: *voucherID,
			UserID:    actor.UserID,
			PaymentID: payment.ID,
			Discount:  payment.Discount,
			UsedAt:    now,
		}
	}
	if err := s.paymentRepo.Create(ctx, payment, reservation); err != nil {
		if errors.Is(err, billing.ErrVoucherAlreadyUsed) || errors.Is(err, billing.ErrVoucherExhausted) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if payment.FinalAmount == 0 {
		if err := s.settle(ctx, payment); err != nil {
			if _, ferr := s.fail(ctx, payment); ferr != nil {
				s.logger.Error(fmt.Sprintf("Failed to close unsettled payment %s: %v", payment.OrderID, ferr))
			}
			return nil, err
		}
		return &billing.CheckoutResult{Payment: payment}, nil
	}

	session, err := s.gateway.CreateCheckout(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to start checkout: %w", err)
	}
	payment.CheckoutToken = session.Token
	payment.RedirectURL = session.RedirectURL
	if err := s.paymentRepo.UpdateByID(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store checkout token: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Checkout %s opened for package %s", payment.OrderID, pkg.ID))
	return &billing.CheckoutResult{Payment: payment, Session: session}, nil
}

// keepsVoucher reports whether a new checkout request matches the voucher of
// the pending payment. An empty code always resumes the pending payment.
func (s *paymentService) keepsVoucher(ctx context.Context, pending *billing.Payment, voucherCode string) bool {
	if voucherCode == "" {
		return true
	}
	if pending.VoucherID == nil {
		return false
	}
	voucher, err := s.vouchers.GetByID(ctx, *pending.VoucherID)
	if err != nil {
		return false
	}
	return voucher.Code == billing.NormalizeCode(voucherCode)
}

// AttachProof links the actor's uploaded receipt to their pending payment
func (s *paymentService) AttachProof(ctx context.Context, actor users.Actor, paymentID, mediaID string) (*billing.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != actor.UserID {
		return nil, billing.ErrNotPaymentOwner
	}
	if !payment.IsPending() {
		return nil, billing.ErrPaymentNotPending
	}

	proof, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if proof.OwnerID != actor.UserID {
		return nil, media.ErrNotMediaOwner
	}

	payment.ProofMediaID = &proof.ID
	if err := s.paymentRepo.UpdateByID(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to attach proof: %w", err)
	}
	return payment, nil
}

// HandleNotification applies a verified gateway callback. Repeated callbacks
// for a payment already in the reported state are accepted.
func (s *paymentService) HandleNotification(ctx context.Context, notification *billing.Notification) (*billing.Payment, error) {
	if err := notification.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if err := s.gateway.VerifyNotification(notification); err != nil {
		s.logger.Warn("Rejected payment notification for order ", notification.OrderID)
		return nil, err
	}

	payment, err := s.paymentRepo.GetByOrderID(ctx, notification.OrderID)
	if err != nil {
		return nil, err
	}

	switch notification.TransactionStatus {
	case billing.NotificationSettlement, billing.NotificationCapture:
		if payment.Status == billing.PaymentCompleted {
			return payment, nil
		}
		if err := s.settle(ctx, payment); err != nil {
			return nil, err
		}
	case billing.NotificationDeny, billing.NotificationCancel, billing.NotificationExpire:
		if payment.Status == billing.PaymentFailed {
			return payment, nil
		}
		return s.fail(ctx, payment)
	}
	return payment, nil
}

// Confirm settles a pending payment after an admin checked the transfer
func (s *paymentService) Confirm(ctx context.Context, paymentID string) (*billing.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.settle(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Fail marks a pending payment failed
func (s *paymentService) Fail(ctx context.Context, paymentID string) (*billing.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return s.fail(ctx, payment)
}

// Cancel fails the actor's own pending payment and releases its voucher
func (s *paymentService) Cancel(ctx context.Context, actor users.Actor, paymentID string) (*billing.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != actor.UserID {
		return nil, billing.ErrNotPaymentOwner
	}
	return s.fail(ctx, payment)
}

// GetByID returns a payment to its owner or an admin
func (s *paymentService) GetByID(ctx context.Context, actor users.Actor, paymentID string) (*billing.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, billing.ErrNotPaymentOwner
	}
	return payment, nil
}

// List returns payments matching the query
func (s *paymentService) List(ctx context.Context, query *billing.PaymentQuery) ([]*billing.Payment, error) {
	return s.paymentRepo.List(ctx, query)
}

// settle completes payment and credits the mentor commission
func (s *paymentService) settle(ctx context.Context, payment *billing.Payment) error {
	if !payment.IsPending() {
		return billing.ErrPaymentNotPending
	}

	settlement := &billing.Settlement{Payment: payment, PaidAt: s.now()}

	mentorID, commission, err := s.commission(ctx, payment)
	if err != nil {
		return err
	}
	settlement.MentorID, settlement.Commission = mentorID, commission

	if err := s.paymentRepo.Settle(ctx, settlement); err != nil {
		return fmt.Errorf("failed to settle payment: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Payment %s settled for Rp%d", payment.OrderID, payment.FinalAmount))
	return nil
}

// commission returns the mentor share of payment when a mentor created the package
func (s *paymentService) commission(ctx context.Context, payment *billing.Payment) (string, int64, error) {
	if s.settings.MentorCommissionPercent == 0 || payment.FinalAmount == 0 {
		return "", 0, nil
	}

	pkg, err := s.packageRepo.GetByID(ctx, payment.PackageID)
	if err != nil {
		return "", 0, err
	}
	creator, err := s.userRepo.GetByID(ctx, pkg.CreatedBy)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", 0, nil
		}
		return "", 0, err
	}
	if creator.Role != users.RoleMentor {
		return "", 0, nil
	}
	return creator.ID, payment.FinalAmount * int64(s.settings.MentorCommissionPercent) / 100, nil
}

func (s *paymentService) fail(ctx context.Context, payment *billing.Payment) (*billing.Payment, error) {
	if err := s.paymentRepo.MarkFailed(ctx, payment.ID, s.now()); err != nil {
		return nil, err
	}
	payment.Status = billing.PaymentFailed

	s.logger.Info(fmt.Sprintf("Payment %s failed", payment.OrderID))
	return payment, nil
}
