package typing

// Tracker is the transient set of connections currently composing a message.
// Entries live only while the connection reports typing; they are removed on
// stop-typing, on send and on disconnect.
//
// Tracker is not safe for concurrent use: the broker owns it and serializes
// all access.
type Tracker struct {
	ids   []string
	users map[string]string
}

func New() *Tracker {
	return &Tracker{users: make(map[string]string)}
}

// Set adds or removes the connection from the active set and reports whether
// the set changed.
func (t *Tracker) Set(connID, username string, isTyping bool) bool {
	if isTyping {
		if _, ok := t.users[connID]; ok {
			t.users[connID] = username
			return false
		}
		t.ids = append(t.ids, connID)
		t.users[connID] = username
		return true
	}
	return t.Clear(connID)
}

// Clear removes the connection from the active set, reporting whether it was
// present.
func (t *Tracker) Clear(connID string) bool {
	if _, ok := t.users[connID]; !ok {
		return false
	}
	delete(t.users, connID)
	for i, id := range t.ids {
		if id == connID {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the usernames currently typing, in insertion order.
func (t *Tracker) Active() []string {
	out := make([]string, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.users[id])
	}
	return out
}
