package users

import (
	"github.com/turrs/bank-skd/internal/pkg/apperrors"
	"github.com/turrs/bank-skd/internal/pkg/validators"
)

var (
	ErrNotFound           = apperrors.Kind(apperrors.ErrNotFound, "user not found")
	ErrEmailTaken         = apperrors.Kind(apperrors.ErrConflict, "email is already registered")
	ErrInvalidCredentials = apperrors.Kind(apperrors.ErrUnauthorized, "invalid email or password")
	ErrAccountDeactivated = apperrors.Kind(apperrors.ErrForbidden, "account is deactivated")
	ErrWrongPassword      = apperrors.Kind(apperrors.ErrInvalid, "current password is incorrect")
	ErrInvalidToken       = apperrors.Kind(apperrors.ErrUnauthorized, "invalid or expired token")
	ErrSelfDemotion       = apperrors.Kind(apperrors.ErrConflict, "admins cannot change their own role or status")
	ErrPasswordTooShort   = validators.Field("password", "password must be at least 6 characters")
)
