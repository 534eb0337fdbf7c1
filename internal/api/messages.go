package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sockchat/internal/broker"
	"sockchat/internal/message"
	"sockchat/pkg/chat"
)

type MessageHandlers struct {
	broker *broker.Broker
}

func NewMessageHandlers(b *broker.Broker) *MessageHandlers {
	return &MessageHandlers{broker: b}
}

// GetMessagesHandler serves message history. One contract for every caller:
// room, isPrivate+recipientId, search and before are all honored together,
// results arrive in chronological order capped at limit (default 20).
func (h *MessageHandlers) GetMessagesHandler(c *gin.Context) {
	q := message.Query{
		Room:        c.Query("room"),
		IsPrivate:   c.Query("isPrivate") == "true",
		RecipientID: c.Query("recipientId"),
		Search:      c.Query("search"),
	}

	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if raw := c.Query("before"); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid before timestamp"})
			return
		}
		q.Before = ts
	}

	messages := h.broker.Messages(q)
	if messages == nil {
		messages = []chat.Message{}
	}
	c.JSON(http.StatusOK, messages)
}
