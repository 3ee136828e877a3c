package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// chatService implements the ChatService interface
type chatService struct {
	chatRepo chat.ChatRepository
	userRepo users.UserRepository
	now      func() time.Time
	logger   logger.Logger
}

// NewChatService creates a new instance of ChatService
func NewChatService(chatRepo chat.ChatRepository, userRepo users.UserRepository, logger logger.Logger) (chat.ChatService, error) {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}, nil
}

// CreateRoom opens a room with the actor as participant. A direct room with
// the same counterpart is returned instead of a duplicate.
func (s *chatService) CreateRoom(ctx context.Context, actor users.Actor, name string, participantIDs []string, isGroup bool) (*chat.Room, error) {
	room := chat.NewRoom(actor.UserID, name, participantIDs, isGroup, s.now())
	if err := room.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	for _, id := range room.ParticipantIDs[1:] {
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	if !room.IsGroup {
		existing, err := s.chatRepo.FindDirectRoom(ctx, room.ParticipantIDs[0], room.ParticipantIDs[1])
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, chat.ErrRoomNotFound) {
			return nil, err
		}
	}

	if err := s.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

// ListRooms returns the actor's rooms, most recent activity first
func (s *chatService) ListRooms(ctx context.Context, actor users.Actor) ([]*chat.RoomSummary, error) {
	return s.chatRepo.ListRooms(ctx, actor.UserID)
}

// SendMessage posts to a room the actor participates in
func (s *chatService) SendMessage(ctx context.Context, actor users.Actor, roomID, content string) (*chat.Message, error) {
	if err := s.ensureParticipant(ctx, roomID, actor.UserID); err != nil {
		return nil, err
	}

	message := chat.NewMessage(roomID, actor.UserID, content, s.now())
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return message, nil
}

// ListMessages pages forward through a room from an optional cursor
func (s *chatService) ListMessages(ctx context.Context, actor users.Actor, query *chat.MessageQuery) ([]*chat.Message, error) {
	if err := s.ensureParticipant(ctx, query.RoomID, actor.UserID); err != nil {
		return nil, err
	}
	if query.Limit == 0 {
		query.Limit = 50
	}
	return s.chatRepo.ListMessages(ctx, query)
}

// MarkRead clears the actor's unread count for a room
func (s *chatService) MarkRead(ctx context.Context, actor users.Actor, roomID string) error {
	return s.chatRepo.MarkRead(ctx, roomID, actor.UserID, s.now())
}

func (s *chatService) ensureParticipant(ctx context.Context, roomID, userID string) error {
	if _, err := s.chatRepo.GetRoom(ctx, roomID); err != nil {
		return err
	}
	ok, err := s.chatRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return chat.ErrNotParticipant
	}
	return nil
}
