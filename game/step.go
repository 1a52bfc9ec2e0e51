package game

// Outcome 一次 Step 中发生的事件
type Outcome struct {
	WallBounce    bool // 左右墙反弹
	CeilingBounce bool // 顶部反弹
	PaddleBounce  bool // 挡板反弹
	Missed        bool // 漏接，本帧进入 GameOver
}

// Step 推进一帧，纯函数：输入当前状态与按键，返回下一帧状态
//
// 顺序固定为：挡板按输入移动 → 用球的预期位置做碰撞 → 未漏接才提交球的位移。
// 非 Running 状态原样返回。
func Step(cfg Config, s State, in Input) (State, Outcome) {
	var out Outcome
	if s.Status != StatusRunning {
		return s, out
	}

	// 同时按下左右时，右优先（if / else if）
	if in.Right {
		s.Paddle.MoveRight(cfg.PaddleSpeed, cfg.CanvasWidth)
	} else if in.Left {
		s.Paddle.MoveLeft(cfg.PaddleSpeed, cfg.CanvasWidth)
	}

	b := &s.Ball
	nx, ny := b.Prospective()

	if nx > cfg.CanvasWidth-b.Radius || nx < b.Radius {
		b.DX = -b.DX
		out.WallBounce = true
		s.WallBounces++
	}
	if ny < b.Radius {
		b.DY = -b.DY
		out.CeilingBounce = true
		s.WallBounces++
	}
	if ny > cfg.CanvasHeight-b.Radius-s.Paddle.Height {
		if paddleHit(cfg.HitMode, s.Paddle, *b) {
			b.DY = -b.DY
			out.PaddleBounce = true
			s.PaddleBounces++
		} else {
			s.Status = StatusGameOver
			out.Missed = true
			s.Tick++
			return s, out
		}
	}

	b.Update()
	s.Tick++
	return s, out
}

func paddleHit(mode HitMode, p Paddle, b Ball) bool {
	if mode == HitRadius {
		return b.X >= p.X-b.Radius && b.X <= p.X+p.Width+b.Radius
	}
	return p.Contains(b.X)
}
