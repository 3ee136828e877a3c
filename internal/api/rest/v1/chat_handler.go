package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/chat"
)

// ChatHandler defines the interface for chat rooms and messages
type ChatHandler interface {
	CreateRoom(ctx *gin.Context)
	ListRooms(ctx *gin.Context)
	SendMessage(ctx *gin.Context)
	ListMessages(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
}

type chatHandler struct {
	chatService chat.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService chat.ChatService) ChatHandler {
	return &chatHandler{chatService: chatService}
}

// CreateRoom opens a room, reusing a direct room that already exists
func (handler *chatHandler) CreateRoom(ctx *gin.Context) {
	var req CreateRoomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	room, err := handler.chatService.CreateRoom(ctx, actorFrom(ctx), req.Name, req.ParticipantIDs, req.IsGroup)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, room)
}

// ListRooms returns the caller's inbox
func (handler *chatHandler) ListRooms(ctx *gin.Context) {
	summaries, err := handler.chatService.ListRooms(ctx, actorFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]RoomSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, RoomSummaryResponse{Room: s.Room, LastMessage: s.LastMessage, Unread: s.Unread})
	}
	ctx.JSON(http.StatusOK, response)
}

// SendMessage posts to a room
func (handler *chatHandler) SendMessage(ctx *gin.Context) {
	var req SendMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	message, err := handler.chatService.SendMessage(ctx, actorFrom(ctx), ctx.Param("id"), req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, message)
}

// ListMessages returns messages newer than the after cursor
func (handler *chatHandler) ListMessages(ctx *gin.Context) {
	query := &chat.MessageQuery{RoomID: ctx.Param("id")}

	var ok bool
	if query.After, ok = queryTime(ctx, "after"); !ok {
		return
	}
	if query.Limit, ok = queryInt(ctx, "limit", 0); !ok {
		return
	}

	messages, err := handler.chatService.ListMessages(ctx, actorFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if messages == nil {
		messages = []*chat.Message{}
	}
	ctx.JSON(http.StatusOK, messages)
}

// MarkRead records that the caller has seen the room
func (handler *chatHandler) MarkRead(ctx *gin.Context) {
	if err := handler.chatService.MarkRead(ctx, actorFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}
