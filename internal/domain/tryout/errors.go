package tryout

import "github.com/turrs/bank-skd/internal/pkg/apperrors"

var (
	ErrSessionNotFound  = apperrors.Kind(apperrors.ErrNotFound, "tryout session not found")
	ErrNotSessionOwner  = apperrors.Kind(apperrors.ErrForbidden, "tryout session belongs to another user")
	ErrSessionExpired   = apperrors.Kind(apperrors.ErrConflict, "tryout session has expired and was submitted")
	ErrSessionCompleted = apperrors.Kind(apperrors.ErrConflict, "tryout session is already completed")
	ErrSessionActive    = apperrors.Kind(apperrors.ErrConflict, "tryout session is still in progress")
	ErrPackageInactive  = apperrors.Kind(apperrors.ErrConflict, "package is not active")
	ErrPackageEmpty     = apperrors.Kind(apperrors.ErrConflict, "package has no questions")
	ErrAttemptLimit     = apperrors.Kind(apperrors.ErrConflict, "attempt limit for this package reached")
	ErrQuestionMismatch = apperrors.Kind(apperrors.ErrInvalid, "question does not belong to this tryout")
	ErrUnknownOption    = apperrors.Kind(apperrors.ErrInvalid, "selected option does not exist on the question")
)
