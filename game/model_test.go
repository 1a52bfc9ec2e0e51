package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg)
	assert.Equal(t, StatusRunning, s.Status)
	assert.Equal(t, Ball{X: 400, Y: 570, DX: 2, DY: -2, Radius: 10}, s.Ball)
	assert.Equal(t, 362.5, s.Paddle.X)
	assert.Equal(t, 75.0, s.Paddle.Width)
	assert.Equal(t, 10.0, s.Paddle.Height)
}

func TestBallUpdate(t *testing.T) {
	b := Ball{X: 10, Y: 20, DX: 2, DY: -3, Radius: 5}
	x, y := b.Prospective()
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 17.0, y)
	assert.Equal(t, 10.0, b.X, "Prospective must not move the ball")

	b.Update()
	assert.Equal(t, 12.0, b.X)
	assert.Equal(t, 17.0, b.Y)
}

func TestPaddleClamp(t *testing.T) {
	p := NewPaddle(DefaultConfig())
	for i := 0; i < 1000; i++ {
		p.MoveLeft(13, 800)
		require.GreaterOrEqual(t, p.X, 0.0)
	}
	assert.Equal(t, 0.0, p.X)
	for i := 0; i < 1000; i++ {
		p.MoveRight(13, 800)
		require.LessOrEqual(t, p.X, 725.0)
	}
	assert.Equal(t, 725.0, p.X)

	assert.True(t, p.Contains(725))
	assert.True(t, p.Contains(800))
	assert.False(t, p.Contains(724.9))
}

func TestParseKey(t *testing.T) {
	tests := map[string]Key{
		"Left":       KeyLeft,
		"ArrowLeft":  KeyLeft,
		"Right":      KeyRight,
		"ArrowRight": KeyRight,
		"ArrowUp":    KeyUnknown,
		"":           KeyUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseKey(in), in)
	}
}

func TestInputPressRelease(t *testing.T) {
	var in Input
	assert.True(t, in.Press(KeyLeft))
	assert.True(t, in.Press(KeyRight))
	assert.Equal(t, Input{Left: true, Right: true}, in)
	assert.True(t, in.Release(KeyLeft))
	assert.Equal(t, Input{Right: true}, in)
	assert.False(t, in.Press(KeyUnknown))
	assert.Equal(t, Input{Right: true}, in)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero canvas", func(c *Config) { c.CanvasWidth = 0 }},
		{"zero radius", func(c *Config) { c.BallRadius = 0 }},
		{"negative paddle", func(c *Config) { c.PaddleHeight = -1 }},
		{"paddle wider than canvas", func(c *Config) { c.PaddleWidth = 801 }},
		{"radius too large", func(c *Config) { c.BallRadius = 400 }},
		{"negative speed", func(c *Config) { c.PaddleSpeed = -1 }},
		{"unknown hit mode", func(c *Config) { c.HitMode = "edge" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "game_over", StatusGameOver.String())
	b, err := StatusGameOver.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "game_over", string(b))
}
