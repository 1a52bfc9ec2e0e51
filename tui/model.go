// Package tui 在终端里本地运行弹球游戏（Bubble Tea）。
//
// 终端只上报按键按下（及系统的自动重复），没有松开事件；
// 这里把"一段时间内没有再次收到同一按键"视为松开。
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"paddleball/game"
)

const (
	DefaultCols = 80
	DefaultRows = 24
	DefaultFPS  = 60

	// DefaultHold 按键视为仍按住的时长，需覆盖终端自动重复的首次延迟
	DefaultHold = 250 * time.Millisecond
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#64748b"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Options 终端前端参数
type Options struct {
	Cols, Rows int
	FPS        int
	Hold       time.Duration
	Autopilot  bool
	Logger     *zap.Logger
}

type frameMsg time.Time

// Model Bubble Tea 模型：帧消息驱动 FrameQueue，按键映射为方向标志
type Model struct {
	cfg    game.Config
	loop   *game.Loop
	frames *game.FrameQueue
	canvas *Canvas

	fps       int
	hold      time.Duration
	held      map[game.Key]time.Time
	autopilot bool
	last      *game.Session // 最近结束的一局
	now       func() time.Time
	log       *zap.Logger
}

// New 创建模型，游戏处于 Idle，按 enter 开始
func New(cfg game.Config, opts Options) (*Model, error) {
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	m := &Model{
		cfg:       cfg,
		frames:    game.NewFrameQueue(),
		canvas:    NewCanvas(cfg, opts.Cols, opts.Rows),
		fps:       opts.FPS,
		hold:      opts.Hold,
		held:      make(map[game.Key]time.Time),
		autopilot: opts.Autopilot,
		now:       time.Now,
		log:       opts.Logger,
	}
	loop, err := game.NewLoop(cfg, m.frames, m.canvas,
		game.WithLogger(opts.Logger),
		game.OnGameOver(func(s *game.Session) { m.last = s }),
	)
	if err != nil {
		return nil, err
	}
	m.loop = loop
	return m, nil
}

// Run 在当前终端运行直到用户退出
func Run(cfg game.Config, opts Options) error {
	m, err := New(cfg, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.press(game.KeyLeft)
		case "right", "l":
			m.press(game.KeyRight)
		case "enter", " ", "s":
			m.loop.Start()
		case "a":
			m.toggleAutopilot()
			m.log.Debug("autopilot toggled", zap.Bool("on", m.autopilot))
		}
		return m, nil
	case frameMsg:
		m.releaseStale()
		if m.autopilot {
			m.steer()
		}
		m.frames.RunFrame()
		return m, m.nextFrame()
	}
	return m, nil
}

// press 按下一个方向键；反方向立即松开，避免左右同时生效
func (m *Model) press(k game.Key) {
	other := game.KeyRight
	if k == game.KeyRight {
		other = game.KeyLeft
	}
	m.loop.KeyUp(other)
	delete(m.held, other)
	m.loop.KeyDown(k)
	m.held[k] = m.now()
}

func (m *Model) releaseStale() {
	now := m.now()
	for k, at := range m.held {
		if now.Sub(at) >= m.hold {
			m.loop.KeyUp(k)
			delete(m.held, k)
		}
	}
}

// toggleAutopilot 切换时清空方向标志与按住记录，程序化输入不会在切换后残留
func (m *Model) toggleAutopilot() {
	m.autopilot = !m.autopilot
	m.loop.SetInput(game.Input{})
	clear(m.held)
}

func (m *Model) steer() {
	snap, ok := m.loop.Snapshot()
	if !ok {
		return
	}
	m.loop.SetInput(game.Autopilot(m.cfg, snap.State))
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(frameStyle.Render(m.canvas.Render()))
	b.WriteByte('\n')

	switch m.loop.Status() {
	case game.StatusIdle:
		b.WriteString(statusStyle.Render("Press enter to start"))
	case game.StatusRunning:
		snap, _ := m.loop.Snapshot()
		line := fmt.Sprintf("tick %d  bounces %d", snap.State.Tick, snap.State.PaddleBounces)
		if m.autopilot {
			line += "  [autopilot]"
		}
		b.WriteString(statusStyle.Render(line))
	case game.StatusGameOver:
		b.WriteString(overStyle.Render("Game Over!"))
		if m.last != nil {
			b.WriteString(statusStyle.Render(fmt.Sprintf("  survived %d ticks, %d bounces  press enter to restart",
				m.last.State.Tick, m.last.State.PaddleBounces)))
		}
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("←/→ move  enter start  a autopilot  q quit"))
	return b.String()
}
