package game

import "math"

// Surface 2D 即时模式绘图上下文（仿 CanvasRenderingContext2D 的最小子集）
// 核心只发出绘图指令，不管理画布生命周期
type Surface interface {
	ClearRect(x, y, w, h float64)
	BeginPath()
	Arc(x, y, r, startAngle, endAngle float64)
	Rect(x, y, w, h float64)
	SetFillStyle(style string)
	Fill()
	ClosePath()
}

// Draw 清屏后依次绘制球与挡板
func Draw(s Surface, cfg Config, st State) {
	s.ClearRect(0, 0, cfg.CanvasWidth, cfg.CanvasHeight)

	s.BeginPath()
	s.Arc(st.Ball.X, st.Ball.Y, st.Ball.Radius, 0, math.Pi*2)
	s.SetFillStyle(cfg.BallColor)
	s.Fill()
	s.ClosePath()

	s.BeginPath()
	s.Rect(st.Paddle.X, cfg.CanvasHeight-st.Paddle.Height, st.Paddle.Width, st.Paddle.Height)
	s.SetFillStyle(cfg.PaddleColor)
	s.Fill()
	s.ClosePath()
}

// DrawOp 一条录制下来的绘图指令，可直接 JSON 序列化给浏览器回放
type DrawOp struct {
	Op    string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Style string    `json:"style,omitempty"`
}

// Recorder 记录绘图指令的 Surface 实现
type Recorder struct {
	ops []DrawOp
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.ops = append(r.ops, DrawOp{Op: "clearRect", Args: []float64{x, y, w, h}})
}

func (r *Recorder) BeginPath() { r.ops = append(r.ops, DrawOp{Op: "beginPath"}) }

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.ops = append(r.ops, DrawOp{Op: "arc", Args: []float64{x, y, radius, startAngle, endAngle}})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.ops = append(r.ops, DrawOp{Op: "rect", Args: []float64{x, y, w, h}})
}

func (r *Recorder) SetFillStyle(style string) {
	r.ops = append(r.ops, DrawOp{Op: "fillStyle", Style: style})
}

func (r *Recorder) Fill()      { r.ops = append(r.ops, DrawOp{Op: "fill"}) }
func (r *Recorder) ClosePath() { r.ops = append(r.ops, DrawOp{Op: "closePath"}) }

// Ops 返回当前录制内容
func (r *Recorder) Ops() []DrawOp { return r.ops }

// Take 取出录制内容并清空，供每帧广播
func (r *Recorder) Take() []DrawOp {
	ops := r.ops
	r.ops = nil
	return ops
}
