package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sockchat/internal/broker"
	"sockchat/internal/config"
	"sockchat/internal/middleware"
)

// NewEngine assembles the gin engine for the service.
func NewEngine(cfg *config.Config, b *broker.Broker, log zerolog.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))

	rl := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	NewRouter(b, cfg.UploadDir, rl, log).RegisterRoutes(engine)
	return engine
}
