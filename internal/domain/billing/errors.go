package billing

import "github.com/turrs/bank-skd/internal/pkg/apperrors"

var (
	ErrPaymentNotFound    = apperrors.Kind(apperrors.ErrNotFound, "payment not found")
	ErrPaymentNotPending  = apperrors.Kind(apperrors.ErrConflict, "payment is no longer pending")
	ErrAlreadyPurchased   = apperrors.Kind(apperrors.ErrConflict, "package already purchased")
	ErrPackageNotForSale  = apperrors.Kind(apperrors.ErrConflict, "package is not available for purchase")
	ErrNotPaymentOwner    = apperrors.Kind(apperrors.ErrForbidden, "payment belongs to another user")
	ErrInvalidSignature   = apperrors.Kind(apperrors.ErrUnauthorized, "notification signature mismatch")
	ErrVoucherNotFound    = apperrors.Kind(apperrors.ErrNotFound, "voucher not found")
	ErrVoucherCodeTaken   = apperrors.Kind(apperrors.ErrConflict, "voucher code already exists")
	ErrVoucherInactive    = apperrors.Kind(apperrors.ErrInvalid, "voucher is not active")
	ErrVoucherNotStarted  = apperrors.Kind(apperrors.ErrInvalid, "voucher is not valid yet")
	ErrVoucherExpired     = apperrors.Kind(apperrors.ErrInvalid, "voucher has expired")
	ErrVoucherExhausted   = apperrors.Kind(apperrors.ErrInvalid, "voucher has no uses left")
	ErrVoucherAlreadyUsed = apperrors.Kind(apperrors.ErrInvalid, "voucher already used by this account")
	ErrBelowMinPurchase   = apperrors.Kind(apperrors.ErrInvalid, "purchase amount is below the voucher minimum")
)
