package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"paddleball/game"
)

type shapeKind int

const (
	shapeArc shapeKind = iota
	shapeRect
)

type shape struct {
	kind       shapeKind
	x, y, w, h float64 // arc: 圆心 (x, y)，半径 w
}

type cell struct {
	glyph rune
	style string
}

// Canvas 把像素坐标的绘图指令栅格化到字符网格上，实现 game.Surface
type Canvas struct {
	cols, rows int
	sx, sy     float64 // 每个字符格对应的像素宽高
	cells      []cell
	path       []shape
	fill       string
	styles     map[string]lipgloss.Style
}

// NewCanvas 按游戏画布尺寸缩放到 cols x rows 个字符
func NewCanvas(cfg game.Config, cols, rows int) *Canvas {
	c := &Canvas{
		cols:   cols,
		rows:   rows,
		sx:     cfg.CanvasWidth / float64(cols),
		sy:     cfg.CanvasHeight / float64(rows),
		cells:  make([]cell, cols*rows),
		styles: make(map[string]lipgloss.Style),
	}
	return c
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	c0, r0, c1, r1 := c.span(x, y, x+w, y+h)
	for r := r0; r <= r1; r++ {
		for col := c0; col <= c1; col++ {
			c.cells[r*c.cols+col] = cell{}
		}
	}
}

func (c *Canvas) BeginPath() { c.path = c.path[:0] }

func (c *Canvas) Arc(x, y, r, _, _ float64) {
	c.path = append(c.path, shape{kind: shapeArc, x: x, y: y, w: r})
}

func (c *Canvas) Rect(x, y, w, h float64) {
	c.path = append(c.path, shape{kind: shapeRect, x: x, y: y, w: w, h: h})
}

func (c *Canvas) SetFillStyle(style string) { c.fill = style }

func (c *Canvas) Fill() {
	for _, s := range c.path {
		switch s.kind {
		case shapeArc:
			c.fillArc(s)
		case shapeRect:
			c.fillRect(s)
		}
	}
}

func (c *Canvas) ClosePath() {}

// fillArc 圆心所在格总是被填充，其余格以格中心是否落在圆内判断
func (c *Canvas) fillArc(s shape) {
	c0, r0, c1, r1 := c.span(s.x-s.w, s.y-s.w, s.x+s.w, s.y+s.w)
	for r := r0; r <= r1; r++ {
		for col := c0; col <= c1; col++ {
			cx := (float64(col) + 0.5) * c.sx
			cy := (float64(r) + 0.5) * c.sy
			if math.Hypot(cx-s.x, cy-s.y) <= s.w {
				c.set(col, r, '●')
			}
		}
	}
	col, r := c.cellAt(s.x, s.y)
	c.set(col, r, '●')
}

func (c *Canvas) fillRect(s shape) {
	c0, r0, c1, r1 := c.span(s.x, s.y, s.x+s.w, s.y+s.h)
	for r := r0; r <= r1; r++ {
		for col := c0; col <= c1; col++ {
			c.set(col, r, '█')
		}
	}
}

func (c *Canvas) set(col, r int, g rune) {
	c.cells[r*c.cols+col] = cell{glyph: g, style: c.fill}
}

func (c *Canvas) cellAt(x, y float64) (col, row int) {
	col = clampInt(int(x/c.sx), 0, c.cols-1)
	row = clampInt(int(y/c.sy), 0, c.rows-1)
	return col, row
}

// span 返回与像素矩形相交的格子范围（闭区间）；右/下边缘恰好落在格线上时不计入下一格
func (c *Canvas) span(x0, y0, x1, y1 float64) (c0, r0, c1, r1 int) {
	c0, r0 = c.cellAt(x0, y0)
	c1 = clampInt(int(math.Ceil(x1/c.sx))-1, 0, c.cols-1)
	r1 = clampInt(int(math.Ceil(y1/c.sy))-1, 0, c.rows-1)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	return c0, r0, c1, r1
}

// Glyph 返回某格的字符（空格表示空白），便于测试
func (c *Canvas) Glyph(col, row int) rune {
	g := c.cells[row*c.cols+col].glyph
	if g == 0 {
		return ' '
	}
	return g
}

// Render 输出带颜色的字符画，同色相邻格合并渲染
func (c *Canvas) Render() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		style := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.style(style).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			cl := c.cells[r*c.cols+col]
			if cl.style != style {
				flush()
				style = cl.style
			}
			if cl.glyph == 0 {
				run.WriteRune(' ')
			} else {
				run.WriteRune(cl.glyph)
			}
		}
		flush()
	}
	return b.String()
}

func (c *Canvas) style(fill string) lipgloss.Style {
	s, ok := c.styles[fill]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(fill))
		c.styles[fill] = s
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
