package room

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidName   = errors.New("room name cannot be empty")
	ErrAlreadyExists = errors.New("room already exists")
)

// DefaultRooms seeds the directory when no persisted room list exists.
var DefaultRooms = []string{"General", "Tech", "Random"}

// Persister loads and saves the room list. The list is rewritten wholesale
// on every change.
type Persister interface {
	Load() ([]string, error)
	Save(rooms []string) error
}

// Directory holds the set of known room names (creation order, case
// sensitive, never deleted) and the connection-to-room mapping.
//
// Directory is not safe for concurrent use: the broker owns it and
// serializes all access.
type Directory struct {
	log       zerolog.Logger
	persister Persister
	rooms     []string
	names     map[string]struct{}
	joined    map[string]string
	order     []string
}

// NewDirectory loads the persisted room list, falling back to DefaultRooms
// when the list is missing, empty or unreadable.
func NewDirectory(p Persister, log zerolog.Logger) *Directory {
	d := &Directory{
		log:       log,
		persister: p,
		names:     make(map[string]struct{}),
		joined:    make(map[string]string),
	}

	rooms, err := p.Load()
	if err != nil {
		log.Warn().Err(err).Msg("could not load room list, using defaults")
		rooms = nil
	}
	if len(rooms) == 0 {
		rooms = DefaultRooms
	}
	for _, name := range rooms {
		if _, ok := d.names[name]; ok {
			continue
		}
		d.rooms = append(d.rooms, name)
		d.names[name] = struct{}{}
	}
	return d
}

// Rooms returns the known room names in creation order.
func (d *Directory) Rooms() []string {
	out := make([]string, len(d.rooms))
	copy(out, d.rooms)
	return out
}

func (d *Directory) Exists(name string) bool {
	_, ok := d.names[name]
	return ok
}

// Create trims the name, validates it and appends it to the directory. The
// updated list is persisted; persistence failures are logged, not surfaced,
// so the in-memory directory stays authoritative.
func (d *Directory) Create(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	if _, ok := d.names[trimmed]; ok {
		return "", ErrAlreadyExists
	}

	d.rooms = append(d.rooms, trimmed)
	d.names[trimmed] = struct{}{}

	if err := d.persister.Save(d.rooms); err != nil {
		d.log.Error().Err(err).Str("room", trimmed).Msg("room list not persisted")
	}
	return trimmed, nil
}

// Join moves a connection into a room. Unknown room names are ignored and
// reported via ok=false. The previous room, if any, is returned so the
// caller can notify its remaining members.
func (d *Directory) Join(connID, name string) (old string, ok bool) {
	if !d.Exists(name) {
		return "", false
	}
	old, seen := d.joined[connID]
	if !seen {
		d.order = append(d.order, connID)
	}
	d.joined[connID] = name
	return old, true
}

// Leave removes a connection from its current room, if any.
func (d *Directory) Leave(connID string) (string, bool) {
	name, ok := d.joined[connID]
	if !ok {
		return "", false
	}
	delete(d.joined, connID)
	for i, id := range d.order {
		if id == connID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return name, true
}

// RoomOf returns the connection's current room, or "" when roomless.
func (d *Directory) RoomOf(connID string) string {
	return d.joined[connID]
}

// MemberIDs returns the connection ids currently joined to a room, in
// first-join order. Linear in the total connection count.
func (d *Directory) MemberIDs(name string) []string {
	var out []string
	for _, id := range d.order {
		if d.joined[id] == name {
			out = append(out, id)
		}
	}
	return out
}
