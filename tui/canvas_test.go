package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"paddleball/game"
)

func TestCanvasRastersBallAndPaddle(t *testing.T) {
	cfg := game.DefaultConfig()
	c := NewCanvas(cfg, 80, 24) // 每格 10x25 像素
	game.Draw(c, cfg, game.NewState(cfg))

	// 球心 (400, 570) 落在第 40 列、第 22 行
	assert.Equal(t, '●', c.Glyph(40, 22))
	// 挡板 x∈[362.5, 437.5]，y∈[590, 600] → 第 36..43 列、最后一行
	for col := 36; col <= 43; col++ {
		assert.Equal(t, '█', c.Glyph(col, 23), "col %d", col)
	}
	assert.Equal(t, ' ', c.Glyph(35, 23))
	assert.Equal(t, ' ', c.Glyph(44, 23))
	assert.Equal(t, ' ', c.Glyph(0, 0))

	c.ClearRect(0, 0, cfg.CanvasWidth, cfg.CanvasHeight)
	assert.Equal(t, ' ', c.Glyph(40, 22))
}

func TestCanvasRenderShape(t *testing.T) {
	cfg := game.DefaultConfig()
	c := NewCanvas(cfg, 20, 5)
	out := c.Render()
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, strings.Repeat(" ", 20), lines[0])
}
