package websocket

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sockchat/internal/broker"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Large enough for a file
	// reference body plus envelope.
	maxMessageSize = 4096

	sendBufferSize = 256
)

// ErrSlowConsumer is returned by Send when the outbound buffer is full. The
// frame is dropped rather than blocking the broker.
var ErrSlowConsumer = errors.New("send buffer full")

// Client adapts one gorilla websocket connection to the broker's Conn
// interface. Outbound frames go through a buffered channel so broker
// handlers never block on a peer.
type Client struct {
	id     string
	conn   *websocket.Conn
	broker *broker.Broker
	send   chan []byte
	log    zerolog.Logger
}

func NewClient(id string, conn *websocket.Conn, b *broker.Broker, log zerolog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		broker: b,
		send:   make(chan []byte, sendBufferSize),
		log:    log.With().Str("connId", id).Logger(),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) Send(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Start registers the client with the broker and runs the pumps. It returns
// immediately; teardown happens when the read pump exits.
func (c *Client) Start() {
	c.broker.Connect(c)
	go c.writePump()
	go c.readPump()
}

// readPump feeds inbound frames to the broker. On any read error the
// connection is considered gone and the broker tears its state down.
func (c *Client) readPump() {
	defer func() {
		c.broker.Disconnect(c.id)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("read error")
			}
			return
		}
		c.broker.Dispatch(c, data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
