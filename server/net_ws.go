package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws     *websocket.Conn
	send   chan []byte
	closed bool // 仅在 Tick 线程读写
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		// 为了实时性，丢弃新帧（防止阻塞 Tick），下一帧会覆盖
	}
}

// Close 关闭发送队列，写协程发完剩余消息后关闭底层连接
func (c *ClientConn) Close() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			// 继续 drain，直到房间关闭队列
			for range c.send {
			}
			return
		}
	}
	_ = c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump 读取客户端消息，转换为 Intent 注入房间
func (c *ClientConn) readPump(room *Room, id ClientID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 线程中移除该客户端
	defer room.RequestLeave(id, c)
	c.ws.SetReadLimit(4 << 10)
	_ = c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(60 * time.Second)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				room.log.Debugf("read from %s: %v", id, err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		in, err := ParseIntent(id, payload)
		if err != nil {
			room.log.Debugf("drop message from %s: %v", id, err)
			continue
		}
		room.OnIntent(in)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=room-1&client=alice
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := roomParam(r, m.defaultRoom)
	clientID := r.URL.Query().Get("client")
	if clientID == "" {
		http.Error(w, "missing client query", http.StatusBadRequest)
		return
	}

	room, err := m.GetOrCreateRoom(roomID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	client := NewClientConn(ws)
	if !room.JoinClient(ClientID(clientID), client) {
		_ = ws.Close()
		return
	}

	go client.writePump()
	go client.readPump(room, ClientID(clientID))
}
