package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置校验失败时返回（使用 errors.Is 判断）
var ErrInvalidConfig = errors.New("invalid game config")

// HitMode 挡板命中判定方式
type HitMode string

const (
	// HitCenter 仅用球心 x 判断是否落在挡板范围内（与原始玩法一致）
	HitCenter HitMode = "center"
	// HitRadius 挡板两侧各放宽一个半径，避免球擦边穿过挡板
	HitRadius HitMode = "radius"
)

// Config 一局游戏的全部常量，开局时固定，局内不变
type Config struct {
	CanvasWidth  float64 `json:"canvasWidth" yaml:"canvas_width"`
	CanvasHeight float64 `json:"canvasHeight" yaml:"canvas_height"`

	BallRadius      float64 `json:"ballRadius" yaml:"ball_radius"`
	BallDX          float64 `json:"ballDX" yaml:"ball_dx"`
	BallDY          float64 `json:"ballDY" yaml:"ball_dy"`
	BallStartOffset float64 `json:"ballStartOffset" yaml:"ball_start_offset"` // 距底边的初始高度

	PaddleWidth  float64 `json:"paddleWidth" yaml:"paddle_width"`
	PaddleHeight float64 `json:"paddleHeight" yaml:"paddle_height"`
	PaddleSpeed  float64 `json:"paddleSpeed" yaml:"paddle_speed"` // 每帧像素

	HitMode HitMode `json:"hitMode" yaml:"hit_mode"`

	BallColor   string `json:"ballColor" yaml:"ball_color"`
	PaddleColor string `json:"paddleColor" yaml:"paddle_color"`
}

// DefaultConfig 默认 800x600 画布
func DefaultConfig() Config {
	return Config{
		CanvasWidth:     800,
		CanvasHeight:    600,
		BallRadius:      10,
		BallDX:          2,
		BallDY:          -2,
		BallStartOffset: 30,
		PaddleWidth:     75,
		PaddleHeight:    10,
		PaddleSpeed:     7,
		HitMode:         HitCenter,
		BallColor:       "#ef4444",
		PaddleColor:     "#1e293b",
	}
}

// Validate 检查尺寸与模式是否合法
func (c Config) Validate() error {
	switch {
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %vx%v", ErrInvalidConfig, c.CanvasWidth, c.CanvasHeight)
	case c.BallRadius <= 0:
		return fmt.Errorf("%w: ball radius must be positive, got %v", ErrInvalidConfig, c.BallRadius)
	case c.PaddleWidth <= 0 || c.PaddleHeight <= 0:
		return fmt.Errorf("%w: paddle size must be positive, got %vx%v", ErrInvalidConfig, c.PaddleWidth, c.PaddleHeight)
	case c.PaddleWidth > c.CanvasWidth:
		return fmt.Errorf("%w: paddle width %v exceeds canvas width %v", ErrInvalidConfig, c.PaddleWidth, c.CanvasWidth)
	case 2*c.BallRadius >= c.CanvasWidth || 2*c.BallRadius+c.PaddleHeight >= c.CanvasHeight:
		return fmt.Errorf("%w: ball radius %v does not fit the canvas", ErrInvalidConfig, c.BallRadius)
	case c.PaddleSpeed < 0:
		return fmt.Errorf("%w: paddle speed must not be negative, got %v", ErrInvalidConfig, c.PaddleSpeed)
	}
	switch c.HitMode {
	case HitCenter, HitRadius:
	default:
		return fmt.Errorf("%w: unknown hit mode %q", ErrInvalidConfig, c.HitMode)
	}
	return nil
}
