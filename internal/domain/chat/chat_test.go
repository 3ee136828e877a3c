//go:build unit
// +build unit

package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRoom_DedupesParticipants(t *testing.T) {
	creator, other := uuid.NewString(), uuid.NewString()

	room := NewRoom(creator, "", []string{other, creator, other}, false, time.Now())

	assert.Equal(t, []string{creator, other}, room.ParticipantIDs)
	assert.NoError(t, room.Validate())
}

func TestRoom_Validate(t *testing.T) {
	creator := uuid.NewString()

	alone := NewRoom(creator, "", nil, false, time.Now())
	assert.Error(t, alone.Validate())

	crowd := NewRoom(creator, "", []string{uuid.NewString(), uuid.NewString()}, false, time.Now())
	assert.Error(t, crowd.Validate(), "direct rooms hold two people")

	crowd.IsGroup = true
	assert.NoError(t, crowd.Validate())
}

func TestMessage_Validate(t *testing.T) {
	msg := NewMessage(uuid.NewString(), uuid.NewString(), "   ", time.Now())
	assert.Error(t, msg.Validate())

	msg = NewMessage(uuid.NewString(), uuid.NewString(), strings.Repeat("x", MaxMessageLength+1), time.Now())
	assert.Error(t, msg.Validate())

	msg = NewMessage(uuid.NewString(), uuid.NewString(), "  halo kak  ", time.Now())
	assert.NoError(t, msg.Validate())
	assert.Equal(t, "halo kak", msg.Content)
}
