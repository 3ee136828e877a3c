package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// MaxMessageLength bounds a single message
const MaxMessageLength = 2000

// Room is a conversation between participants
type Room struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	Name            string    `json:"name" validate:"max=100"`
	IsGroup         bool      `json:"is_group"`
	CreatedBy       string    `json:"created_by" validate:"required,uuid4"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
	ParticipantIDs  []string  `json:"participant_ids" validate:"required,min=2,max=100,unique,dive,uuid4"`
}

// NewRoom creates a room with creator among the participants
func NewRoom(creatorID, name string, participantIDs []string, isGroup bool, now time.Time) *Room {
	ids := []string{creatorID}
	seen := map[string]bool{creatorID: true}
	for _, id := range participantIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return &Room{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		IsGroup:         isGroup,
		CreatedBy:       creatorID,
		DateTimeCreated: now,
		ParticipantIDs:  ids,
	}
}

// Validate for validating Room struct
func (r *Room) Validate() error {
	if err := validators.Struct(r); err != nil {
		return err
	}
	if !r.IsGroup && len(r.ParticipantIDs) != 2 {
		return validators.Field("participant_ids", "a direct room has exactly two participants")
	}
	return nil
}

// Message entity
type Message struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	RoomID          string    `json:"room_id" validate:"required,uuid4"`
	SenderID        string    `json:"sender_id" validate:"required,uuid4"`
	Content         string    `json:"content" validate:"required,max=2000"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
}

// NewMessage trims content and stamps the message
func NewMessage(roomID, senderID, content string, now time.Time) *Message {
	return &Message{
		ID:              uuid.NewString(),
		RoomID:          roomID,
		SenderID:        senderID,
		Content:         strings.TrimSpace(content),
		DateTimeCreated: now,
	}
}

// Validate for validating Message struct
func (m *Message) Validate() error {
	return validators.Struct(m)
}

// RoomSummary is a room as listed for one participant
type RoomSummary struct {
	Room        *Room
	LastMessage *Message
	Unread      int64
}

// MessageQuery pages through a room. After is an exclusive cursor.
type MessageQuery struct {
	RoomID string `validate:"required,uuid4"`
	After  *time.Time
	Limit  int `validate:"gte=0,lte=200"`
}

// Validate for validating MessageQuery struct
func (q *MessageQuery) Validate() error {
	return validators.Struct(q)
}
