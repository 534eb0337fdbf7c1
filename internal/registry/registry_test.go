package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sockchat/pkg/chat"
)

func TestRegistry_SnapshotOrder(t *testing.T) {
	r := New()
	r.Register("c1", "alice")
	r.Register("c2", "bob")
	r.Register("c3", "carol")

	assert.Equal(t, []chat.UserInfo{
		{ID: "c1", Username: "alice"},
		{ID: "c2", Username: "bob"},
		{ID: "c3", Username: "carol"},
	}, r.Snapshot())
}

func TestRegistry_DuplicateUsernamesAllowed(t *testing.T) {
	r := New()
	r.Register("c1", "alice")
	r.Register("c2", "alice")

	assert.Len(t, r.Snapshot(), 2)
	assert.Equal(t, "alice", r.UsernameOf("c1"))
	assert.Equal(t, "alice", r.UsernameOf("c2"))
}

func TestRegistry_UnregisterIdempotent(t *testing.T) {
	r := New()
	r.Register("c1", "alice")

	r.Unregister("c1")
	r.Unregister("c1")
	r.Unregister("never-seen")

	assert.Empty(t, r.Snapshot())
}

func TestRegistry_UsernameOfUnbound(t *testing.T) {
	r := New()
	assert.Equal(t, AnonymousName, r.UsernameOf("ghost"))

	_, ok := r.Lookup("ghost")
	assert.False(t, ok)
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	r := New()
	r.Register("c1", "alice")
	r.Register("c2", "bob")
	r.Register("c1", "alicia")

	snap := r.Snapshot()
	assert.Equal(t, "c1", snap[0].ID)
	assert.Equal(t, "alicia", snap[0].Username)
	assert.Len(t, snap, 2)
}
