package chat

import (
	"context"
	"time"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// ChatService provides request/response messaging; clients poll with a cursor.
type ChatService interface {
	// CreateRoom opens a room. Direct rooms between the same two users are reused.
	CreateRoom(ctx context.Context, actor users.Actor, name string, participantIDs []string, isGroup bool) (*Room, error)
	ListRooms(ctx context.Context, actor users.Actor) ([]*RoomSummary, error)
	SendMessage(ctx context.Context, actor users.Actor, roomID, content string) (*Message, error)
	ListMessages(ctx context.Context, actor users.Actor, query *MessageQuery) ([]*Message, error)
	MarkRead(ctx context.Context, actor users.Actor, roomID string) error
}

// ChatRepository defines the interface for room and message operations
type ChatRepository interface {
	// CreateRoom stores the room with its participants.
	CreateRoom(ctx context.Context, room *Room) error
	// FindDirectRoom returns the direct room shared by a and b or ErrRoomNotFound.
	FindDirectRoom(ctx context.Context, a, b string) (*Room, error)
	GetRoom(ctx context.Context, roomID string) (*Room, error)
	IsParticipant(ctx context.Context, roomID, userID string) (bool, error)
	ListRooms(ctx context.Context, userID string) ([]*RoomSummary, error)
	CreateMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context, query *MessageQuery) ([]*Message, error)
	MarkRead(ctx context.Context, roomID, userID string, at time.Time) error
}
