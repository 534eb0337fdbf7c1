package message

import (
	"sort"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"sockchat/pkg/chat"
)

const (
	// DefaultCapacity bounds the retained log; the oldest message is evicted
	// when it is exceeded.
	DefaultCapacity = 100

	// DefaultQueryLimit is applied when a query does not set one.
	DefaultQueryLimit = 20

	idLength = 12
)

type entry struct {
	msg *chat.Message
	seq uint64
}

// Store is the append-only bounded log of all messages, broadcast and
// private. Ids are random nanoids, so lookups need no room disambiguation;
// ordering lives in the timestamp plus an internal sequence used as a sort
// tiebreaker for same-instant bursts.
//
// Store is not safe for concurrent use: the broker owns it and serializes
// all access.
type Store struct {
	capacity int
	entries  []entry
	nextSeq  uint64
	now      func() time.Time
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity, now: time.Now}
}

// Append assigns an id and timestamp, inserts at the tail and evicts from
// the head past capacity. The stored message is returned for re-broadcast.
func (s *Store) Append(msg chat.Message) chat.Message {
	msg.ID = nanoid.Must(idLength)
	msg.Timestamp = s.now().UTC()
	if !msg.IsPrivate && msg.ReadBy == nil {
		msg.ReadBy = []string{}
	}

	stored := msg
	s.entries = append(s.entries, entry{msg: &stored, seq: s.nextSeq})
	s.nextSeq++
	if len(s.entries) > s.capacity {
		s.entries = s.entries[1:]
	}
	return clone(&stored)
}

// Get returns a copy of the message with the given id.
func (s *Store) Get(id string) (chat.Message, bool) {
	if e := s.find(id); e != nil {
		return clone(e.msg), true
	}
	return chat.Message{}, false
}

// Len returns the number of retained messages.
func (s *Store) Len() int { return len(s.entries) }

// MarkRead records that username has read the broadcast message with the
// given id. The room must match the stored message; a mismatch is treated
// as not found. Idempotent: an already-present username changes nothing.
// The updated readBy set is returned along with whether anything changed.
func (s *Store) MarkRead(id, room, username string) ([]string, bool) {
	e := s.find(id)
	if e == nil || e.msg.IsPrivate || e.msg.Room != room {
		return nil, false
	}
	for _, name := range e.msg.ReadBy {
		if name == username {
			return nil, false
		}
	}
	e.msg.ReadBy = append(e.msg.ReadBy, username)
	return append([]string(nil), e.msg.ReadBy...), true
}

// ToggleReaction toggles username on the emoji's user set: absent users are
// added, present users removed, and an emoji whose user set empties is
// dropped entirely. The updated message copy carries the reaction mapping
// plus the room or private parties the caller needs to compute the audience.
func (s *Store) ToggleReaction(id, emoji, username string) (chat.Message, bool) {
	e := s.find(id)
	if e == nil {
		return chat.Message{}, false
	}

	if e.msg.Reactions == nil {
		e.msg.Reactions = make(map[string][]string)
	}
	users := e.msg.Reactions[emoji]
	removed := false
	for i, name := range users {
		if name == username {
			users = append(users[:i], users[i+1:]...)
			removed = true
			break
		}
	}
	switch {
	case removed && len(users) == 0:
		delete(e.msg.Reactions, emoji)
	case removed:
		e.msg.Reactions[emoji] = users
	default:
		e.msg.Reactions[emoji] = append(users, username)
	}
	return clone(e.msg), true
}

// Query filters the retained log. All filters are optional and combinable.
// Results are the most recent Limit matches, returned oldest to newest.
type Query struct {
	Room        string    // exact match, excludes private messages
	IsPrivate   bool      // private messages only
	RecipientID string    // with IsPrivate: connection is sender or recipient
	Search      string    // case-insensitive substring, text bodies only
	Before      time.Time // strict less-than on timestamp
	Limit       int       // defaults to DefaultQueryLimit
}

func (s *Store) Query(q Query) []chat.Message {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var matched []entry
	for _, e := range s.entries {
		if q.matches(e.msg) {
			matched = append(matched, e)
		}
	}

	// Newest first, sequence breaking timestamp ties, then cut and restore
	// chronological order: callers always receive oldest to newest.
	sort.Slice(matched, func(i, j int) bool {
		ti, tj := matched[i].msg.Timestamp, matched[j].msg.Timestamp
		if ti.Equal(tj) {
			return matched[i].seq > matched[j].seq
		}
		return ti.After(tj)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]chat.Message, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		out = append(out, clone(matched[i].msg))
	}
	return out
}

func (q Query) matches(m *chat.Message) bool {
	if q.Room != "" && (m.IsPrivate || m.Room != q.Room) {
		return false
	}
	if q.IsPrivate {
		if !m.IsPrivate {
			return false
		}
		if q.RecipientID != "" && m.SenderID != q.RecipientID && m.RecipientID != q.RecipientID {
			return false
		}
	}
	if q.Search != "" {
		if m.Body.IsFile() {
			return false
		}
		if !strings.Contains(strings.ToLower(m.Body.Text), strings.ToLower(q.Search)) {
			return false
		}
	}
	if !q.Before.IsZero() && !m.Timestamp.Before(q.Before) {
		return false
	}
	return true
}

func (s *Store) find(id string) *entry {
	for i := range s.entries {
		if s.entries[i].msg.ID == id {
			return &s.entries[i]
		}
	}
	return nil
}

func clone(m *chat.Message) chat.Message {
	out := *m
	if m.ReadBy != nil {
		out.ReadBy = make([]string, len(m.ReadBy))
		copy(out.ReadBy, m.ReadBy)
	}
	if m.Reactions != nil {
		out.Reactions = make(map[string][]string, len(m.Reactions))
		for emoji, users := range m.Reactions {
			out.Reactions[emoji] = append([]string(nil), users...)
		}
	}
	return out
}
