package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status 会话状态机
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText 让 JSON 中输出可读的状态名
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 解析状态名
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StatusIdle
	case "running":
		*s = StatusRunning
	case "game_over":
		*s = StatusGameOver
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// State 某一帧的完整世界状态（值类型，Step 返回新副本）
type State struct {
	Status Status `json:"status"`
	Ball   Ball   `json:"ball"`
	Paddle Paddle `json:"paddle"`

	Tick          uint64 `json:"tick"`
	WallBounces   int    `json:"wallBounces"`
	PaddleBounces int    `json:"paddleBounces"`
}

// NewState 按配置构造一个开局状态（Running）
func NewState(cfg Config) State {
	return State{
		Status: StatusRunning,
		Ball:   NewBall(cfg),
		Paddle: NewPaddle(cfg),
	}
}

// Session 从开局到结束的一局游戏
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	State     State
}

// NewSession 创建新会话；重开时总是整体替换，不复用旧会话
func NewSession(cfg Config) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		State:     NewState(cfg),
	}
}
