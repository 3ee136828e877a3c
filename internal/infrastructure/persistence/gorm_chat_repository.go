package persistence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormChatRepository is the implementation of the ChatRepository interface
type gormChatRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormChatRepository creates a new gormChatRepository instance
func NewGormChatRepository(db *gorm.DB, logger logger.Logger) (chat.ChatRepository, error) {
	return &gormChatRepository{
		db:     db,
		logger: logger,
	}, nil
}

// CreateRoom stores a room and its participants
func (r *gormChatRepository) CreateRoom(ctx context.Context, room *chat.Room) error {
	if err := room.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ChatRoomModel{}
	model.FromDomain(room)

	participants := make([]*models.ChatParticipantModel, len(room.ParticipantIDs))
	for i, id := range room.ParticipantIDs {
		participants[i] = &models.ChatParticipantModel{RoomID: room.ID, UserID: id, JoinedAt: room.DateTimeCreated}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return errors.Wrap(err, "failed to create chat room")
		}
		if err := tx.Create(&participants).Error; err != nil {
			return errors.Wrap(err, "failed to add chat participants")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Created chat room with id ", room.ID)
	return nil
}

// FindDirectRoom returns the non-group room shared by two users
func (r *gormChatRepository) FindDirectRoom(ctx context.Context, a, b string) (*chat.Room, error) {
	var model models.ChatRoomModel
	err := r.db.WithContext(ctx).Model(&models.ChatRoomModel{}).
		Joins("JOIN chat_participants AS pa ON pa.room_id = chat_rooms.id AND pa.user_id = ?", a).
		Joins("JOIN chat_participants AS pb ON pb.room_id = chat_rooms.id AND pb.user_id = ?", b).
		Where("chat_rooms.is_group = ?", false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrRoomNotFound
		}
		return nil, errors.Wrap(err, "failed to find direct room")
	}
	return r.withParticipants(ctx, &model)
}

// GetRoom retrieves a room with its participants
func (r *gormChatRepository) GetRoom(ctx context.Context, roomID string) (*chat.Room, error) {
	var model models.ChatRoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", roomID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrRoomNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch chat room")
	}
	return r.withParticipants(ctx, &model)
}

func (r *gormChatRepository) withParticipants(ctx context.Context, model *models.ChatRoomModel) (*chat.Room, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.ChatParticipantModel{}).
		Where("room_id = ?", model.ID).Order("joined_at asc").Order("user_id asc").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chat participants")
	}
	return model.ToDomain(ids), nil
}

// IsParticipant reports whether a user belongs to a room
func (r *gormChatRepository) IsParticipant(ctx context.Context, roomID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ChatParticipantModel{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check chat participant")
	}
	return count > 0, nil
}

// ListRooms returns the user's rooms with their latest message and unread count,
// most recently active first
func (r *gormChatRepository) ListRooms(ctx context.Context, userID string) ([]*chat.RoomSummary, error) {
	var memberships []models.ChatParticipantModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list chat memberships")
	}

	summaries := make([]*chat.RoomSummary, 0, len(memberships))
	for _, m := range memberships {
		room, err := r.GetRoom(ctx, m.RoomID)
		if err != nil {
			return nil, err
		}
		summary := &chat.RoomSummary{Room: room}

		var last models.ChatMessageModel
		err = r.db.WithContext(ctx).Where("room_id = ?", m.RoomID).
			Order("date_time_created desc").Limit(1).Find(&last).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch last chat message")
		}
		if last.ID != "" {
			summary.LastMessage = last.ToDomain()
		}

		unread := r.db.WithContext(ctx).Model(&models.ChatMessageModel{}).
			Where("room_id = ? AND sender_id <> ?", m.RoomID, userID)
		if m.LastReadAt != nil {
			unread = unread.Where("date_time_created > ?", *m.LastReadAt)
		}
		if err := unread.Count(&summary.Unread).Error; err != nil {
			return nil, errors.Wrap(err, "failed to count unread messages")
		}
		summaries = append(summaries, summary)
	}

	sortSummaries(summaries)
	return summaries, nil
}

func sortSummaries(summaries []*chat.RoomSummary) {
	activity := func(s *chat.RoomSummary) time.Time {
		if s.LastMessage != nil {
			return s.LastMessage.DateTimeCreated
		}
		return s.Room.DateTimeCreated
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return activity(summaries[i]).After(activity(summaries[j]))
	})
}

// CreateMessage stores a message
func (r *gormChatRepository) CreateMessage(ctx context.Context, message *chat.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ChatMessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(err, "failed to create chat message")
	}

	r.logger.Debug("Created chat message with id ", message.ID, " in room ", message.RoomID)
	return nil
}

// ListMessages returns messages of a room in chronological order after the cursor
func (r *gormChatRepository) ListMessages(ctx context.Context, query *chat.MessageQuery) ([]*chat.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Where("room_id = ?", query.RoomID)
	if query.After != nil {
		dbQuery = dbQuery.Where("date_time_created > ?", *query.After)
	}
	dbQuery = paginate(dbQuery.Order("date_time_created asc").Order("id asc"), query.Limit, 0)

	var found []models.ChatMessageModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages")
	}

	result := make([]*chat.Message, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// MarkRead moves the user's read marker of a room to at
func (r *gormChatRepository) MarkRead(ctx context.Context, roomID, userID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.ChatParticipantModel{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("last_read_at", at)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to mark chat room read")
	}
	if res.RowsAffected == 0 {
		return chat.ErrNotParticipant
	}
	return nil
}
