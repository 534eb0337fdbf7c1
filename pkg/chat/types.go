package chat

import (
	"encoding/json"
	"time"
)

// Inbound event names (client to server).
const (
	EventUserJoin       = "user_join"
	EventJoinRoom       = "join_room"
	EventLeaveRoom      = "leave_room"
	EventSendMessage    = "send_message"
	EventMessageRead    = "message_read"
	EventTyping         = "typing"
	EventPrivateMessage = "private_message"
	EventAddReaction    = "add_reaction"
	EventCreateRoom     = "create_room"
)

// Outbound event names (server to client).
const (
	EventUserList       = "user_list"
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventJoinedRoom     = "joined_room"
	EventReceiveMessage = "receive_message"
	EventReadUpdate     = "message_read_update"
	EventTypingUsers    = "typing_users"
	EventReactionUpdate = "reaction_update"
	EventRoomList       = "room_list"
)

// Envelope is the wire framing for every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode wraps a payload into an envelope frame.
func Encode(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// FileRef points at an uploaded file. The upload endpoint returns one and the
// client echoes it back as a message body.
type FileRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Body is a message body: either plain text or a file reference. On the wire
// it is a bare JSON string or a FileRef object.
type Body struct {
	Text string
	File *FileRef
}

func TextBody(s string) Body { return Body{Text: s} }

func FileBody(f FileRef) Body { return Body{File: &f} }

func (b Body) IsFile() bool { return b.File != nil }

func (b Body) MarshalJSON() ([]byte, error) {
	if b.File != nil {
		return json.Marshal(b.File)
	}
	return json.Marshal(b.Text)
}

func (b *Body) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Body{Text: s}
		return nil
	}
	var f FileRef
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = Body{File: &f}
	return nil
}

// Message is a stored chat message, broadcast or private. Exactly one of the
// two classifications holds: Room is set for broadcast messages, IsPrivate
// plus RecipientID for private ones. ReadBy is tracked for broadcast messages
// only.
type Message struct {
	ID          string              `json:"id"`
	Sender      string              `json:"sender"`
	SenderID    string              `json:"senderId"`
	Body        Body                `json:"message"`
	Timestamp   time.Time           `json:"timestamp"`
	Room        string              `json:"room,omitempty"`
	IsPrivate   bool                `json:"isPrivate,omitempty"`
	RecipientID string              `json:"recipientId,omitempty"`
	ReadBy      []string            `json:"readBy,omitempty"`
	Reactions   map[string][]string `json:"reactions,omitempty"`
}

// UserInfo is a presence entry: one live connection and its display name.
// Display names are not unique across connections.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
