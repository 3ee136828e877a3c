package chat

import "github.com/turrs/bank-skd/internal/pkg/apperrors"

var (
	ErrRoomNotFound   = apperrors.Kind(apperrors.ErrNotFound, "chat room not found")
	ErrNotParticipant = apperrors.Kind(apperrors.ErrForbidden, "not a participant of this room")
)
