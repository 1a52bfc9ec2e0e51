package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"paddleball/game"
)

// IntentKind 客户端意图类型
type IntentKind int

const (
	IntentKeyDown IntentKind = iota + 1
	IntentKeyUp
	IntentStart
)

// Intent 客户端输入（意图），由服务端在 Tick 中解释并驱动游戏主循环
type Intent struct {
	ClientID ClientID
	Kind     IntentKind
	Key      game.Key
	RawKey   string
	Seq      int64 // 客户端本地序列号，用于去重
}

// InboundMessage 入站 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"keydown","key":"ArrowLeft","seq":3}、{"type":"start"}
type InboundMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// ParseIntent 将一条文本消息解析为意图
func ParseIntent(id ClientID, payload []byte) (Intent, error) {
	var im InboundMessage
	if err := json.Unmarshal(payload, &im); err != nil {
		return Intent{}, fmt.Errorf("decode inbound message: %w", err)
	}
	in := Intent{ClientID: id, RawKey: im.Key, Key: game.ParseKey(im.Key), Seq: im.Seq}
	switch strings.ToLower(im.Type) {
	case "keydown":
		in.Kind = IntentKeyDown
	case "keyup":
		in.Kind = IntentKeyUp
	case "start", "restart":
		in.Kind = IntentStart
	default:
		return Intent{}, fmt.Errorf("unknown message type %q", im.Type)
	}
	return in, nil
}

// FrameMessage 每帧广播：绘图指令 + 权威状态
type FrameMessage struct {
	Type    string        `json:"type"` // "frame"
	Room    string        `json:"room"`
	Session string        `json:"session"`
	Status  game.Status   `json:"status"`
	Tick    uint64        `json:"tick"`
	State   game.State    `json:"state"`
	Ops     []game.DrawOp `json:"ops"`
}

// GameOverMessage 会话结束通知
type GameOverMessage struct {
	Type          string `json:"type"` // "gameover"
	Room          string `json:"room"`
	Session       string `json:"session"`
	Tick          uint64 `json:"tick"`
	PaddleBounces int    `json:"paddleBounces"`
	DurationMs    int64  `json:"durationMs"`
}
