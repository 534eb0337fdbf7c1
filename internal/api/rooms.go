package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sockchat/internal/broker"
	"sockchat/internal/room"
)

type RoomHandlers struct {
	broker *broker.Broker
}

func NewRoomHandlers(b *broker.Broker) *RoomHandlers {
	return &RoomHandlers{broker: b}
}

type CreateRoomRequest struct {
	Name string `json:"name"`
}

func (h *RoomHandlers) GetRoomsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.broker.Rooms())
}

// CreateRoomHandler creates a room over REST. Unlike the socket path, which
// absorbs failures, it reports them: 400 for an empty name, 409 for a
// duplicate. Success also announces the updated room list to every
// connected client.
func (h *RoomHandlers) CreateRoomHandler(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
		return
	}

	name, err := h.broker.CreateRoom(req.Name)
	switch {
	case errors.Is(err, room.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
	case errors.Is(err, room.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Room already exists"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
	default:
		c.JSON(http.StatusCreated, gin.H{"name": name})
	}
}
