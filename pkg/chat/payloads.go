package chat

// SendMessagePayload is the send_message data. Room is optional: the server
// falls back to the sender's current room, then to "General".
type SendMessagePayload struct {
	Message Body   `json:"message"`
	Room    string `json:"room,omitempty"`
}

// MessageReadPayload is the message_read data.
type MessageReadPayload struct {
	MessageID string `json:"messageId"`
	Username  string `json:"username"`
	Room      string `json:"room"`
}

// PrivateMessagePayload is the private_message data. To is a connection id.
type PrivateMessagePayload struct {
	To      string `json:"to"`
	Message Body   `json:"message"`
}

// AddReactionPayload is the add_reaction data.
type AddReactionPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	Username  string `json:"username"`
}

// CreateRoomPayload is the create_room data.
type CreateRoomPayload struct {
	Name string `json:"name"`
}

// ReadUpdatePayload is the message_read_update data sent to room members.
type ReadUpdatePayload struct {
	MessageID string   `json:"messageId"`
	ReadBy    []string `json:"readBy"`
	Room      string   `json:"room"`
}

// ReactionUpdatePayload is the reaction_update data.
type ReactionUpdatePayload struct {
	MessageID string              `json:"messageId"`
	Reactions map[string][]string `json:"reactions"`
}
