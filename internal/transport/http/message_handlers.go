package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/voyago/citychat-server/internal/store"
)

// MessageHandlers provides HTTP handlers for the read-only history API.
type MessageHandlers struct {
	store store.MessageStore
	limit int
	log   *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(st store.MessageStore, limit int, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		store: st,
		limit: limit,
		log:   logger,
	}
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	SenderName   string `json:"senderName"`
	SenderAvatar string `json:"senderAvatar"`
	Content      string `json:"content"`
	Flagged      bool   `json:"flagged"`
	Timestamp    int64  `json:"timestamp"`
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRoomMessages returns a room's messages ascending by creation time.
// GET /api/rooms/:room/messages
func (h *MessageHandlers) ListRoomMessages(c *gin.Context) {
	room := c.Param("room")
	if room == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "room is required"})
		return
	}

	messages, err := h.store.MessagesByRoom(c.Request.Context(), room, h.limit)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, MessageResponse{
			SenderName:   m.SenderName,
			SenderAvatar: m.SenderAvatar,
			Content:      m.Content,
			Flagged:      m.Flagged,
			Timestamp:    m.CreatedAt.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, out)
}
