package server

// ClientID 连接到房间的客户端（浏览器标签页）唯一标识
type ClientID string

// joinRequest 加入/离开请求，由 Tick 线程处理
type joinRequest struct {
	id   ClientID
	conn *ClientConn
}
