package broker

import (
	"encoding/json"

	"sockchat/pkg/chat"
)

// Dispatch decodes one inbound frame and routes it to its handler. Bad
// frames are dropped: the protocol has no error event type, and a bad
// client event never breaks the connection.
func (b *Broker) Dispatch(conn Conn, raw []byte) {
	var env chat.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.log.Debug().Err(err).Str("connId", conn.ID()).Msg("unparseable frame dropped")
		return
	}

	switch env.Event {
	case chat.EventUserJoin:
		var username string
		if b.decode(conn, env, &username) {
			b.UserJoin(conn.ID(), username)
		}
	case chat.EventJoinRoom:
		var name string
		if b.decode(conn, env, &name) {
			b.JoinRoom(conn.ID(), name)
		}
	case chat.EventLeaveRoom:
		b.LeaveRoom(conn.ID())
	case chat.EventSendMessage:
		var p chat.SendMessagePayload
		if b.decode(conn, env, &p) {
			b.SendMessage(conn.ID(), p)
		}
	case chat.EventMessageRead:
		var p chat.MessageReadPayload
		if b.decode(conn, env, &p) {
			b.MessageRead(conn.ID(), p)
		}
	case chat.EventTyping:
		var isTyping bool
		if b.decode(conn, env, &isTyping) {
			b.Typing(conn.ID(), isTyping)
		}
	case chat.EventPrivateMessage:
		var p chat.PrivateMessagePayload
		if b.decode(conn, env, &p) {
			b.PrivateMessage(conn.ID(), p)
		}
	case chat.EventAddReaction:
		var p chat.AddReactionPayload
		if b.decode(conn, env, &p) {
			b.AddReaction(conn.ID(), p)
		}
	case chat.EventCreateRoom:
		var p chat.CreateRoomPayload
		if b.decode(conn, env, &p) {
			if _, err := b.CreateRoom(p.Name); err != nil {
				b.log.Debug().Err(err).Str("connId", conn.ID()).Msg("create_room dropped")
			}
		}
	default:
		b.log.Debug().Str("connId", conn.ID()).Str("event", env.Event).Msg("unknown event dropped")
	}
}

func (b *Broker) decode(conn Conn, env chat.Envelope, out any) bool {
	if err := json.Unmarshal(env.Data, out); err != nil {
		b.log.Debug().Err(err).Str("connId", conn.ID()).Str("event", env.Event).Msg("bad payload dropped")
		return false
	}
	return true
}
