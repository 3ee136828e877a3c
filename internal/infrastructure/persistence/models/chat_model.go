package models

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/chat"
)

// ChatRoomModel is the GORM database model for chat rooms
type ChatRoomModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Name            string    `gorm:"type:varchar(100)"`
	IsGroup         bool      `gorm:"not null;default:false"`
	CreatedBy       string    `gorm:"not null;type:uuid"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ChatRoomModel) TableName() string {
	return "chat_rooms"
}

// ToDomain converts GORM model to domain entity
func (m *ChatRoomModel) ToDomain(participantIDs []string) *chat.Room {
	return &chat.Room{
		ID:              m.ID,
		Name:            m.Name,
		IsGroup:         m.IsGroup,
		CreatedBy:       m.CreatedBy,
		DateTimeCreated: m.DateTimeCreated,
		ParticipantIDs:  participantIDs,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ChatRoomModel) FromDomain(r *chat.Room) {
	m.ID = r.ID
	m.Name = r.Name
	m.IsGroup = r.IsGroup
	m.CreatedBy = r.CreatedBy
	m.DateTimeCreated = r.DateTimeCreated
}

// ChatParticipantModel links a user to a room and tracks what they have read
type ChatParticipantModel struct {
	RoomID     string `gorm:"primaryKey;type:uuid"`
	UserID     string `gorm:"primaryKey;type:uuid;index"`
	LastReadAt *time.Time
	JoinedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ChatParticipantModel) TableName() string {
	return "chat_participants"
}

// ChatMessageModel is the GORM database model for chat messages
type ChatMessageModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	RoomID          string    `gorm:"not null;index:idx_chat_messages_room_created,priority:1;type:uuid"`
	SenderID        string    `gorm:"not null;type:uuid"`
	Content         string    `gorm:"not null;type:text"`
	DateTimeCreated time.Time `gorm:"not null;index:idx_chat_messages_room_created,priority:2"`
}

// TableName specifies the table name for GORM
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts GORM model to domain entity
func (m *ChatMessageModel) ToDomain() *chat.Message {
	return &chat.Message{
		ID:              m.ID,
		RoomID:          m.RoomID,
		SenderID:        m.SenderID,
		Content:         m.Content,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ChatMessageModel) FromDomain(msg *chat.Message) {
	m.ID = msg.ID
	m.RoomID = msg.RoomID
	m.SenderID = msg.SenderID
	m.Content = msg.Content
	m.DateTimeCreated = msg.DateTimeCreated
}
