package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sockchat/internal/broker"
	"sockchat/internal/message"
	"sockchat/internal/registry"
	"sockchat/internal/room"
	"sockchat/internal/typing"
)

type nopPersister struct{}

func (nopPersister) Load() ([]string, error) { return nil, nil }

func (nopPersister) Save([]string) error { return nil }

// testConn satisfies broker.Conn for seeding presence in handler tests.
type testConn struct {
	id string
}

func (c *testConn) ID() string { return c.id }

func (c *testConn) Send([]byte) error { return nil }

func setupTestRouter(t *testing.T) (*gin.Engine, *broker.Broker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	b := broker.New(
		log,
		registry.New(),
		room.NewDirectory(nopPersister{}, log),
		message.NewStore(message.DefaultCapacity),
		typing.New(),
	)

	engine := gin.New()
	NewRouter(b, t.TempDir(), nil, log).RegisterRoutes(engine)
	return engine, b
}
