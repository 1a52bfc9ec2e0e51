package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"paddleball/game"
)

// configPatch 部分更新载荷，未出现的字段保持不变
type configPatch struct {
	CanvasWidth     *float64      `json:"canvasWidth,omitempty"`
	CanvasHeight    *float64      `json:"canvasHeight,omitempty"`
	BallRadius      *float64      `json:"ballRadius,omitempty"`
	BallDX          *float64      `json:"ballDX,omitempty"`
	BallDY          *float64      `json:"ballDY,omitempty"`
	BallStartOffset *float64      `json:"ballStartOffset,omitempty"`
	PaddleWidth     *float64      `json:"paddleWidth,omitempty"`
	PaddleHeight    *float64      `json:"paddleHeight,omitempty"`
	PaddleSpeed     *float64      `json:"paddleSpeed,omitempty"`
	HitMode         *game.HitMode `json:"hitMode,omitempty"`
	BallColor       *string       `json:"ballColor,omitempty"`
	PaddleColor     *string       `json:"paddleColor,omitempty"`
}

func (p configPatch) apply(c game.Config) game.Config {
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setF(&c.CanvasWidth, p.CanvasWidth)
	setF(&c.CanvasHeight, p.CanvasHeight)
	setF(&c.BallRadius, p.BallRadius)
	setF(&c.BallDX, p.BallDX)
	setF(&c.BallDY, p.BallDY)
	setF(&c.BallStartOffset, p.BallStartOffset)
	setF(&c.PaddleWidth, p.PaddleWidth)
	setF(&c.PaddleHeight, p.PaddleHeight)
	setF(&c.PaddleSpeed, p.PaddleSpeed)
	if p.HitMode != nil {
		c.HitMode = *p.HitMode
	}
	if p.BallColor != nil {
		c.BallColor = *p.BallColor
	}
	if p.PaddleColor != nil {
		c.PaddleColor = *p.PaddleColor
	}
	return c
}

// HandleAdminConfig 提供房间配置的读取与更新（下一局生效）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room, err := m.GetOrCreateRoom(roomParam(r, m.defaultRoom))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, room.Config())
	case http.MethodPost:
		var body configPatch
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		next := body.apply(room.Config())
		if err := room.UpdateConfig(next); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, game.ErrInvalidConfig) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "config": next})
		Log.Infof("config updated: room=%s %+v", room.ID, next)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	id := roomParam(r, m.defaultRoom)
	room, ok := m.Room(id)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	v := room.View()
	writeJSON(w, http.StatusOK, map[string]any{
		"room":    id,
		"session": v.Session,
		"status":  v.Status,
		"tick":    v.Tick,
		"clients": v.Clients,
		"metrics": room.Metrics().Snapshot(),
	})
}

// HandleRooms 列出所有房间
func (m *RoomManager) HandleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.Rooms())
}

// Routes 组装 HTTP 路由：WebSocket、管理接口与静态页面
func (m *RoomManager) Routes(webDir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleWS)
	mux.HandleFunc("/admin/config", m.HandleAdminConfig)
	mux.HandleFunc("/metrics", m.HandleMetrics)
	mux.HandleFunc("/rooms", m.HandleRooms)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if webDir != "" {
		// 前后端分离：将 / 映射到 web 目录的静态资源
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}
	return mux
}

func roomParam(r *http.Request, def string) string {
	if id := r.URL.Query().Get("room"); id != "" {
		return id
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
