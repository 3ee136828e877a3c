package catalog

import "github.com/turrs/bank-skd/internal/pkg/apperrors"

var (
	ErrPackageNotFound  = apperrors.Kind(apperrors.ErrNotFound, "package not found")
	ErrQuestionNotFound = apperrors.Kind(apperrors.ErrNotFound, "question not found")
	ErrNotOwner         = apperrors.Kind(apperrors.ErrForbidden, "only the package creator or an admin may change this package")
	ErrNoAccess         = apperrors.Kind(apperrors.ErrForbidden, "package has not been purchased")
)
