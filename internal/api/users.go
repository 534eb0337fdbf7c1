package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sockchat/internal/broker"
)

type UserHandlers struct {
	broker *broker.Broker
}

func NewUserHandlers(b *broker.Broker) *UserHandlers {
	return &UserHandlers{broker: b}
}

// GetUsersHandler lists the currently connected users.
func (h *UserHandlers) GetUsersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.broker.Users())
}
