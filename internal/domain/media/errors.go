package media

import "github.com/turrs/bank-skd/internal/pkg/apperrors"

var (
	ErrMediaNotFound = apperrors.Kind(apperrors.ErrNotFound, "media not found")
	ErrTooLarge      = apperrors.Kind(apperrors.ErrInvalid, "file exceeds the upload limit")
	ErrEmptyUpload   = apperrors.Kind(apperrors.ErrInvalid, "no file provided")
	ErrNotMediaOwner = apperrors.Kind(apperrors.ErrForbidden, "media belongs to another user")
)
