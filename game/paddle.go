package game

// Paddle 底部挡板，只能水平移动
type Paddle struct {
	X      float64 `json:"x"` // 左边缘
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewPaddle 水平居中
func NewPaddle(cfg Config) Paddle {
	return Paddle{
		X:      (cfg.CanvasWidth - cfg.PaddleWidth) / 2,
		Width:  cfg.PaddleWidth,
		Height: cfg.PaddleHeight,
	}
}

// MoveLeft 左移并裁剪到 [0, canvasWidth-width]
func (p *Paddle) MoveLeft(speed, canvasWidth float64) {
	p.X -= speed
	p.clamp(canvasWidth)
}

// MoveRight 右移并裁剪到 [0, canvasWidth-width]
func (p *Paddle) MoveRight(speed, canvasWidth float64) {
	p.X += speed
	p.clamp(canvasWidth)
}

// Contains 判断 x 是否落在挡板水平范围内（闭区间）
func (p Paddle) Contains(x float64) bool {
	return x >= p.X && x <= p.X+p.Width
}

func (p *Paddle) clamp(canvasWidth float64) {
	if limit := canvasWidth - p.Width; p.X > limit {
		p.X = limit
	}
	if p.X < 0 {
		p.X = 0
	}
}
