package game

// Autopilot 让挡板中心追随球的 x 坐标，死区为半个挡板速度，避免来回抖动
func Autopilot(cfg Config, s State) Input {
	center := s.Paddle.X + s.Paddle.Width/2
	dead := cfg.PaddleSpeed / 2
	switch {
	case s.Ball.X > center+dead:
		return Input{Right: true}
	case s.Ball.X < center-dead:
		return Input{Left: true}
	default:
		return Input{}
	}
}
