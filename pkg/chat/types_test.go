package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody_TextRoundTrip(t *testing.T) {
	b, err := json.Marshal(TextBody("hello there"))
	require.NoError(t, err)
	assert.Equal(t, `"hello there"`, string(b))

	var decoded Body
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "hello there", decoded.Text)
	assert.False(t, decoded.IsFile())
}

func TestBody_FileRoundTrip(t *testing.T) {
	ref := FileRef{URL: "/uploads/abc-cat.png", Name: "cat.png", Type: "image/png"}
	b, err := json.Marshal(FileBody(ref))
	require.NoError(t, err)

	var decoded Body
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.True(t, decoded.IsFile())
	assert.Equal(t, ref, *decoded.File)
}

func TestBody_RejectsOtherShapes(t *testing.T) {
	var decoded Body
	assert.Error(t, json.Unmarshal([]byte(`42`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &decoded))
}

func TestEncode_WrapsPayload(t *testing.T) {
	frame, err := Encode(EventJoinedRoom, "Tech")
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, EventJoinedRoom, env.Event)

	var room string
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, "Tech", room)
}

func TestEncode_NilData(t *testing.T) {
	frame, err := Encode(EventLeaveRoom, nil)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, EventLeaveRoom, env.Event)
	assert.Empty(t, env.Data)
}
