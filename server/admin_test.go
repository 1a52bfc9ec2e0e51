package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddleball/game"
)

func newTestManager(t *testing.T) *RoomManager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	m := NewRoomManager(ctx, game.DefaultConfig(), 60, "")
	t.Cleanup(func() {
		cancel()
		m.Wait()
	})
	return m
}

func TestAdminConfigGetAndPatch(t *testing.T) {
	m := newTestManager(t)
	h := m.Routes("")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/config?room=r1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got game.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, game.DefaultConfig(), got)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room=r1",
		strings.NewReader(`{"paddleSpeed":9,"hitMode":"radius"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	room, ok := m.Room("r1")
	require.True(t, ok)
	assert.Equal(t, 9.0, room.Config().PaddleSpeed)
	assert.Equal(t, game.HitRadius, room.Config().HitMode)
	assert.Equal(t, 75.0, room.Config().PaddleWidth)
}

func TestAdminConfigRejects(t *testing.T) {
	m := newTestManager(t)
	h := m.Routes("")

	tests := []struct {
		name   string
		method string
		body   string
		code   int
	}{
		{"bad json", http.MethodPost, `{`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, `{"gravity":1}`, http.StatusBadRequest},
		{"invalid config", http.MethodPost, `{"ballRadius":0}`, http.StatusBadRequest},
		{"method", http.MethodDelete, ``, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/admin/config", strings.NewReader(tt.body)))
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	room, ok := m.Room(m.DefaultRoom())
	require.True(t, ok)
	assert.Equal(t, game.DefaultConfig(), room.Config())
}

func TestMetricsAndRooms(t *testing.T) {
	m := newTestManager(t)
	h := m.Routes("")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := m.GetOrCreateRoom("b")
	require.NoError(t, err)
	_, err = m.GetOrCreateRoom("a")
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=a", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "a", payload["room"])
	assert.Equal(t, "idle", payload["status"])
	assert.Contains(t, payload["metrics"], "tick_count")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))
	var views []RoomView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].ID)
	assert.Equal(t, "b", views[1].ID)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestManagerApplyConfig(t *testing.T) {
	m := newTestManager(t)
	r, err := m.GetOrCreateRoom("a")
	require.NoError(t, err)

	cfg := game.DefaultConfig()
	cfg.PaddleSpeed = 3
	require.NoError(t, m.ApplyConfig(cfg))
	assert.Equal(t, 3.0, r.Config().PaddleSpeed)

	r2, err := m.GetOrCreateRoom("b")
	require.NoError(t, err)
	assert.Equal(t, 3.0, r2.Config().PaddleSpeed)

	cfg.PaddleWidth = 0
	assert.ErrorIs(t, m.ApplyConfig(cfg), game.ErrInvalidConfig)
}

func TestManagerClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewRoomManager(ctx, game.DefaultConfig(), 60, "")
	cancel()
	_, err := m.GetOrCreateRoom("a")
	assert.ErrorIs(t, err, ErrManagerClosed)
	m.Wait()
}

// 页面按当前协议选择 ws/wss，https 部署下也能建立连接
func TestStaticIndexFollowsPageScheme(t *testing.T) {
	m := newTestManager(t)
	h := m.Routes("../web")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "location.protocol === 'https:' ? 'wss' : 'ws'")
	assert.NotContains(t, body, "`ws://")
}
