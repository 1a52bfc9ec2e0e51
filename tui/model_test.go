package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddleball/game"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel(t *testing.T, cfg game.Config) (*Model, *fakeClock) {
	t.Helper()
	m, err := New(cfg, Options{})
	require.NoError(t, err)
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	m.now = clk.now
	return m, clk
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartAndFrames(t *testing.T) {
	m, _ := newTestModel(t, game.DefaultConfig())
	assert.Contains(t, m.View(), "Press enter to start")

	m.Update(key("enter"))
	assert.Equal(t, game.StatusRunning, m.loop.Status())

	_, cmd := m.Update(frameMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(2), m.loop.Ticks())
	assert.Contains(t, m.View(), "tick 2")
}

func TestModelKeyHoldAndRelease(t *testing.T) {
	m, clk := newTestModel(t, game.DefaultConfig())
	m.Update(key("enter"))

	m.Update(key("right"))
	assert.Equal(t, game.Input{Right: true}, m.loop.Input())

	// 反方向按下会松开原方向
	m.Update(key("h"))
	assert.Equal(t, game.Input{Left: true}, m.loop.Input())

	clk.advance(DefaultHold / 2)
	m.Update(frameMsg(clk.t))
	assert.Equal(t, game.Input{Left: true}, m.loop.Input())

	clk.advance(DefaultHold)
	m.Update(frameMsg(clk.t))
	assert.Equal(t, game.Input{}, m.loop.Input())
}

func TestModelGameOverView(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.BallDX = 20
	cfg.BallDY = 2
	m, _ := newTestModel(t, cfg)
	m.Update(key("enter"))
	for i := 0; i < 10; i++ {
		m.Update(frameMsg(time.Now()))
	}
	require.Equal(t, game.StatusGameOver, m.loop.Status())
	view := m.View()
	assert.Contains(t, view, "Game Over!")
	assert.Contains(t, view, "survived 6 ticks")

	m.Update(key("enter"))
	assert.Equal(t, game.StatusRunning, m.loop.Status())
}

func TestModelAutopilot(t *testing.T) {
	m, _ := newTestModel(t, game.DefaultConfig())
	m.Update(key("a"))
	m.Update(key("enter"))
	for i := 0; i < 3000; i++ {
		m.Update(frameMsg(time.Now()))
	}
	assert.Equal(t, game.StatusRunning, m.loop.Status())
	assert.Contains(t, m.View(), "[autopilot]")
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, game.DefaultConfig())
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelAutopilotOffClearsInput(t *testing.T) {
	m, clk := newTestModel(t, game.DefaultConfig())
	m.Update(key("a"))
	m.Update(key("enter"))
	for i := 0; i < 600 && m.loop.Input() == (game.Input{}); i++ {
		clk.advance(time.Second / DefaultFPS)
		m.Update(frameMsg(clk.t))
	}
	require.NotEqual(t, game.Input{}, m.loop.Input())

	m.Update(key("a"))
	assert.Equal(t, game.Input{}, m.loop.Input())

	snap, _ := m.loop.Snapshot()
	x := snap.State.Paddle.X
	for i := 0; i < 120; i++ {
		clk.advance(time.Second / DefaultFPS)
		m.Update(frameMsg(clk.t))
	}
	assert.Equal(t, game.Input{}, m.loop.Input())
	snap, _ = m.loop.Snapshot()
	assert.Equal(t, x, snap.State.Paddle.X)
}
