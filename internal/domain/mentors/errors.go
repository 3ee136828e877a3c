package mentors

import "github.com/turrs/bank-skd/internal/pkg/apperrors"

var (
	ErrWithdrawalNotFound  = apperrors.Kind(apperrors.ErrNotFound, "withdrawal not found")
	ErrInsufficientBalance = apperrors.Kind(apperrors.ErrConflict, "insufficient balance")
	ErrBelowMinWithdrawal  = apperrors.Kind(apperrors.ErrInvalid, "amount is below the minimum withdrawal")
	ErrWithdrawalProcessed = apperrors.Kind(apperrors.ErrConflict, "withdrawal was already processed")
	ErrNotMentor           = apperrors.Kind(apperrors.ErrForbidden, "only mentors have a balance")
)
