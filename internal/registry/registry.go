package registry

import "sockchat/pkg/chat"

// AnonymousName is returned for connections that never sent user_join.
const AnonymousName = "Anonymous"

// Registry maps live connection ids to display names. Insertion order is
// preserved so snapshots are stable.
//
// Registry is not safe for concurrent use: the broker owns it and serializes
// all access.
type Registry struct {
	ids   []string
	users map[string]string
}

func New() *Registry {
	return &Registry{users: make(map[string]string)}
}

// Register binds a username to a connection. Usernames are display names,
// not identities: two connections may share one.
func (r *Registry) Register(connID, username string) {
	if _, ok := r.users[connID]; !ok {
		r.ids = append(r.ids, connID)
	}
	r.users[connID] = username
}

// Unregister removes the binding. Unknown ids are a no-op.
func (r *Registry) Unregister(connID string) {
	if _, ok := r.users[connID]; !ok {
		return
	}
	delete(r.users, connID)
	for i, id := range r.ids {
		if id == connID {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
}

// Lookup returns the bound username, if any.
func (r *Registry) Lookup(connID string) (string, bool) {
	name, ok := r.users[connID]
	return name, ok
}

// UsernameOf returns the bound username or the anonymous sentinel. It never
// fails.
func (r *Registry) UsernameOf(connID string) string {
	if name, ok := r.users[connID]; ok {
		return name
	}
	return AnonymousName
}

// Snapshot returns all registered connections in insertion order.
func (r *Registry) Snapshot() []chat.UserInfo {
	out := make([]chat.UserInfo, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, chat.UserInfo{ID: id, Username: r.users[id]})
	}
	return out
}
