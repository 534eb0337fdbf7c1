package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"sockchat/internal/broker"
	ws "sockchat/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The original service served arbitrary origins; there is no
	// authentication to protect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	broker *broker.Broker
	log    zerolog.Logger
}

func NewWebSocketHandler(b *broker.Broker, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{broker: b, log: log}
}

// HandleWebSocket upgrades the connection and hands it to the broker under
// a fresh connection id. Ids are never reused: a reconnect is a new
// session with no restored state.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id, err := nanoid.New(10)
	if err != nil {
		h.log.Error().Err(err).Msg("connection id generation failed")
		conn.Close()
		return
	}

	ws.NewClient(id, conn, h.broker, h.log).Start()
}
