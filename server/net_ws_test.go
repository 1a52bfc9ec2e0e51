package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"paddleball/game"
)

func TestWebSocketRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	m := NewRoomManager(ctx, game.DefaultConfig(), 120, "")
	ts := httptest.NewServer(m.Routes(""))

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?room=r1&client=alice"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	send := func(v any) {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, b))
	}
	send(InboundMessage{Type: "start", Seq: 1})
	send(InboundMessage{Type: "keydown", Key: "ArrowLeft", Seq: 2})

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame FrameMessage
	for frame.Tick < 5 {
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(payload, &frame))
		require.Equal(t, "frame", frame.Type)
	}
	assert.Equal(t, "r1", frame.Room)
	assert.Equal(t, game.StatusRunning, frame.Status)
	assert.NotEmpty(t, frame.Session)
	assert.Less(t, frame.State.Paddle.X, 362.5)
	assert.Equal(t, "clearRect", frame.Ops[0].Op)

	room, ok := m.Room("r1")
	require.True(t, ok)
	assert.Equal(t, 1, room.View().Clients)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return room.View().Clients == 0 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	m.Wait()
	ts.Close()
}

func TestWebSocketMissingClient(t *testing.T) {
	m := newTestManager(t)
	ts := httptest.NewServer(m.Routes(""))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}
