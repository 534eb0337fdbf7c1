package broker

import (
	"sync"

	"github.com/rs/zerolog"

	"sockchat/internal/message"
	"sockchat/internal/registry"
	"sockchat/internal/room"
	"sockchat/internal/typing"
	"sockchat/pkg/chat"
)

// FallbackRoom receives messages sent by connections that never joined a
// room and named none.
const FallbackRoom = "General"

// Conn is one live client connection as the broker sees it. Send must not
// block: transports queue frames and drop when the peer cannot keep up.
type Conn interface {
	ID() string
	Send(data []byte) error
}

// Broker is the event dispatch layer. It is the sole mutator of the
// registry, room directory, message store and typing tracker: every inbound
// event mutates exactly one store under a single mutex and runs to
// completion, then emits to its audience. Handlers are best-effort and
// non-throwing from the client's perspective; malformed or
// nonexistent-entity events are dropped without an error event.
type Broker struct {
	mu  sync.Mutex
	log zerolog.Logger

	conns    map[string]Conn
	registry *registry.Registry
	rooms    *room.Directory
	messages *message.Store
	typing   *typing.Tracker
}

func New(log zerolog.Logger, reg *registry.Registry, rooms *room.Directory, messages *message.Store, typers *typing.Tracker) *Broker {
	return &Broker{
		log:      log,
		conns:    make(map[string]Conn),
		registry: reg,
		rooms:    rooms,
		messages: messages,
		typing:   typers,
	}
}

// Connect adds a transport-level connection. No events fire until the
// client sends user_join.
func (b *Broker) Connect(conn Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conns[conn.ID()] = conn
	b.log.Debug().Str("connId", conn.ID()).Msg("connection opened")
}

// Disconnect tears down all state for a connection: presence, typing and
// room membership, with the matching announcements. Reconnects arrive as
// fresh connection ids; nothing is resumed.
func (b *Broker) Disconnect(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.conns[connID]; !ok {
		return
	}

	if username, ok := b.registry.Lookup(connID); ok {
		b.broadcastAll(chat.EventUserLeft, chat.UserInfo{ID: connID, Username: username})
		b.log.Info().Str("connId", connID).Str("username", username).Msg("user left")
	}

	b.registry.Unregister(connID)
	b.typing.Clear(connID)
	delete(b.conns, connID)

	b.broadcastAll(chat.EventUserList, b.registry.Snapshot())
	b.broadcastAll(chat.EventTypingUsers, b.typing.Active())

	if name, ok := b.rooms.Leave(connID); ok {
		b.broadcastRoom(name, chat.EventUserList, b.members(name))
	}
}

// UserJoin binds a username to the connection and announces the updated
// presence list to everyone.
func (b *Broker) UserJoin(connID, username string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.conns[connID]; !ok {
		return
	}
	b.registry.Register(connID, username)
	b.broadcastAll(chat.EventUserList, b.registry.Snapshot())
	b.broadcastAll(chat.EventUserJoined, chat.UserInfo{ID: connID, Username: username})
	b.log.Info().Str("connId", connID).Str("username", username).Msg("user joined")
}

// JoinRoom moves the connection between rooms. Unknown room names are
// ignored, matching the original protocol's permissive policy. The old
// room's remaining members get a membership update, the new room's members
// get one too, and the requester alone gets the ack.
func (b *Broker) JoinRoom(connID, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.rooms.Join(connID, name)
	if !ok {
		b.log.Debug().Str("connId", connID).Str("room", name).Msg("join_room for unknown room dropped")
		return
	}
	if old != "" && old != name {
		b.broadcastRoom(old, chat.EventUserList, b.members(old))
	}
	b.broadcastRoom(name, chat.EventUserList, b.members(name))
	b.sendTo(connID, chat.EventJoinedRoom, name)
}

// LeaveRoom removes the connection from its current room, if any.
func (b *Broker) LeaveRoom(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name, ok := b.rooms.Leave(connID); ok {
		b.broadcastRoom(name, chat.EventUserList, b.members(name))
	}
}

// SendMessage appends a broadcast message and fans it out to the resolved
// room: the explicit room, else the sender's current room, else the
// fallback. Sending also ends the sender's typing state.
func (b *Broker) SendMessage(connID string, p chat.SendMessagePayload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := p.Room
	if name == "" {
		name = b.rooms.RoomOf(connID)
	}
	if name == "" {
		name = FallbackRoom
	}

	stored := b.messages.Append(chat.Message{
		Sender:   b.registry.UsernameOf(connID),
		SenderID: connID,
		Body:     p.Message,
		Room:     name,
	})
	b.broadcastRoom(name, chat.EventReceiveMessage, stored)

	if b.typing.Clear(connID) {
		b.broadcastAll(chat.EventTypingUsers, b.typing.Active())
	}
}

// MessageRead records a read receipt and notifies the room, only when the
// receipt actually changed something.
func (b *Broker) MessageRead(connID string, p chat.MessageReadPayload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	readBy, changed := b.messages.MarkRead(p.MessageID, p.Room, p.Username)
	if !changed {
		return
	}
	b.broadcastRoom(p.Room, chat.EventReadUpdate, chat.ReadUpdatePayload{
		MessageID: p.MessageID,
		ReadBy:    readBy,
		Room:      p.Room,
	})
}

// Typing updates the global typing set. Unregistered connections are
// ignored: there is no name to show.
func (b *Broker) Typing(connID string, isTyping bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	username, ok := b.registry.Lookup(connID)
	if !ok {
		return
	}
	if b.typing.Set(connID, username, isTyping) {
		b.broadcastAll(chat.EventTypingUsers, b.typing.Active())
	}
}

// PrivateMessage appends a private message and delivers it to exactly the
// two parties, regardless of room membership.
func (b *Broker) PrivateMessage(connID string, p chat.PrivateMessagePayload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := b.messages.Append(chat.Message{
		Sender:      b.registry.UsernameOf(connID),
		SenderID:    connID,
		Body:        p.Message,
		IsPrivate:   true,
		RecipientID: p.To,
	})
	b.sendTo(connID, chat.EventPrivateMessage, stored)
	if p.To != connID {
		b.sendTo(p.To, chat.EventPrivateMessage, stored)
	}
}

// AddReaction toggles a reaction and notifies the message's audience. Only
// a party of a private message, or a current member of a broadcast
// message's room, may react; anyone else is silently dropped.
func (b *Broker) AddReaction(connID string, p chat.AddReactionPayload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg, ok := b.messages.Get(p.MessageID)
	if !ok {
		return
	}
	if !b.mayReact(connID, msg) {
		b.log.Debug().Str("connId", connID).Str("messageId", p.MessageID).
			Msg("reaction from outside the message audience dropped")
		return
	}

	updated, ok := b.messages.ToggleReaction(p.MessageID, p.Emoji, p.Username)
	if !ok {
		return
	}
	payload := chat.ReactionUpdatePayload{MessageID: updated.ID, Reactions: updated.Reactions}
	if updated.IsPrivate {
		b.sendTo(updated.SenderID, chat.EventReactionUpdate, payload)
		if updated.RecipientID != updated.SenderID {
			b.sendTo(updated.RecipientID, chat.EventReactionUpdate, payload)
		}
		return
	}
	b.broadcastRoom(updated.Room, chat.EventReactionUpdate, payload)
}

// CreateRoom adds a room and announces the full room list to every
// connection. The error return is for the REST surface; the socket path
// discards it.
func (b *Broker) CreateRoom(name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	created, err := b.rooms.Create(name)
	if err != nil {
		return "", err
	}
	b.broadcastAll(chat.EventRoomList, b.rooms.Rooms())
	b.log.Info().Str("room", created).Msg("room created")
	return created, nil
}

// Users returns the presence snapshot for the REST surface.
func (b *Broker) Users() []chat.UserInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.Snapshot()
}

// Rooms returns the room list for the REST surface.
func (b *Broker) Rooms() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rooms.Rooms()
}

// Messages runs a read-only history query for the REST surface.
func (b *Broker) Messages(q message.Query) []chat.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.messages.Query(q)
}

func (b *Broker) mayReact(connID string, msg chat.Message) bool {
	if msg.IsPrivate {
		return connID == msg.SenderID || connID == msg.RecipientID
	}
	return b.rooms.RoomOf(connID) == msg.Room
}

func (b *Broker) members(name string) []chat.UserInfo {
	ids := b.rooms.MemberIDs(name)
	out := make([]chat.UserInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, chat.UserInfo{ID: id, Username: b.registry.UsernameOf(id)})
	}
	return out
}

func (b *Broker) broadcastAll(event string, data any) {
	frame, err := chat.Encode(event, data)
	if err != nil {
		b.log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	for _, conn := range b.conns {
		b.deliver(conn, event, frame)
	}
}

func (b *Broker) broadcastRoom(name, event string, data any) {
	frame, err := chat.Encode(event, data)
	if err != nil {
		b.log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	for _, id := range b.rooms.MemberIDs(name) {
		if conn, ok := b.conns[id]; ok {
			b.deliver(conn, event, frame)
		}
	}
}

func (b *Broker) sendTo(connID, event string, data any) {
	conn, ok := b.conns[connID]
	if !ok {
		return
	}
	frame, err := chat.Encode(event, data)
	if err != nil {
		b.log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	b.deliver(conn, event, frame)
}

func (b *Broker) deliver(conn Conn, event string, frame []byte) {
	if err := conn.Send(frame); err != nil {
		b.log.Debug().Err(err).Str("connId", conn.ID()).Str("event", event).Msg("frame dropped")
	}
}
