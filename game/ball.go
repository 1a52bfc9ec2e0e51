package game

// Ball 运动中的球：位置、每帧速度与固定半径
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Radius float64 `json:"radius"`
}

// NewBall 按配置放在画布水平中央、距底边 BallStartOffset 处
func NewBall(cfg Config) Ball {
	return Ball{
		X:      cfg.CanvasWidth / 2,
		Y:      cfg.CanvasHeight - cfg.BallStartOffset,
		DX:     cfg.BallDX,
		DY:     cfg.BallDY,
		Radius: cfg.BallRadius,
	}
}

// Update 按速度推进一帧，不做任何边界检查（碰撞由 Step 负责）
func (b *Ball) Update() {
	b.X += b.DX
	b.Y += b.DY
}

// Prospective 返回下一帧将到达的位置，不修改球
func (b Ball) Prospective() (x, y float64) {
	return b.X + b.DX, b.Y + b.DY
}
