package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sockchat/internal/broker"
	"sockchat/internal/middleware"
)

// Router wires the REST surface and the websocket upgrade endpoint. All
// reads go through the broker, which owns the stores; the only mutating
// route is room creation.
type Router struct {
	rh *RoomHandlers
	mh *MessageHandlers
	uh *UserHandlers
	fh *UploadHandlers
	wh *WebSocketHandler
	rl *middleware.IPRateLimiter
}

func NewRouter(b *broker.Broker, uploadDir string, rl *middleware.IPRateLimiter, log zerolog.Logger) *Router {
	return &Router{
		rh: NewRoomHandlers(b),
		mh: NewMessageHandlers(b),
		uh: NewUserHandlers(b),
		fh: NewUploadHandlers(uploadDir),
		wh: NewWebSocketHandler(b, log),
		rl: rl,
	}
}

func (r *Router) RegisterRoutes(router *gin.Engine) {
	router.GET("/hc", HealthCheckHandler)
	router.GET("/ws", r.wh.HandleWebSocket)
	router.Static("/uploads", r.fh.dir)
	router.POST("/upload", r.fh.UploadHandler)

	api := router.Group("/api")
	if r.rl != nil {
		api.Use(r.rl.Middleware())
	}
	api.GET("/rooms", r.rh.GetRoomsHandler)
	api.POST("/rooms", r.rh.CreateRoomHandler)
	api.GET("/messages", r.mh.GetMessagesHandler)
	api.GET("/users", r.uh.GetUsersHandler)
}

func HealthCheckHandler(c *gin.Context) {
	c.String(200, "Running")
}
