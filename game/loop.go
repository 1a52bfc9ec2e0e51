package game

import (
	"time"

	"go.uber.org/zap"
)

// Loop 游戏主循环：持有唯一的 Session，每帧 绘制 → Step → 请求下一帧。
// 所有方法必须在同一个 goroutine 中调用（与 Scheduler 执行回调的线程一致）。
type Loop struct {
	cfg     Config
	sched   Scheduler
	surface Surface
	log     *zap.Logger

	session *Session
	input   Input

	pending    FrameID
	hasPending bool
	ticks      uint64 // 所有会话累计执行的 tick 次数

	onTick     func(*Session, Outcome)
	onGameOver func(*Session)
}

// Option 配置 Loop 的可选项
type Option func(*Loop)

// WithLogger 注入日志器，默认 zap.NewNop()
func WithLogger(l *zap.Logger) Option {
	return func(lp *Loop) { lp.log = l }
}

// OnTick 每帧 Step 之后回调
func OnTick(fn func(*Session, Outcome)) Option {
	return func(lp *Loop) { lp.onTick = fn }
}

// OnGameOver 会话结束时回调，每个会话恰好一次
func OnGameOver(fn func(*Session)) Option {
	return func(lp *Loop) { lp.onGameOver = fn }
}

// NewLoop 创建处于 Idle 状态的主循环
func NewLoop(cfg Config, sched Scheduler, surface Surface, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Loop{
		cfg:     cfg,
		sched:   sched,
		surface: surface,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l, nil
}

// Start 开始或重开：先取消已登记的下一帧，再整体重建会话并立即执行第一帧
func (l *Loop) Start() {
	if l.hasPending {
		l.sched.CancelFrame(l.pending)
		l.hasPending = false
	}
	prev := l.session
	l.session = NewSession(l.cfg)
	if prev != nil {
		l.log.Info("session restarted",
			zap.String("previous", prev.ID),
			zap.String("previous_status", prev.State.Status.String()),
			zap.String("session", l.session.ID))
	} else {
		l.log.Info("session started", zap.String("session", l.session.ID))
	}
	l.tick()
}

// SetConfig 更新配置，从下一次 Start 开始生效
func (l *Loop) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.cfg = cfg
	return nil
}

// Config 当前配置
func (l *Loop) Config() Config { return l.cfg }

// KeyDown 按键按下；返回是否为游戏关心的按键
func (l *Loop) KeyDown(k Key) bool { return l.input.Press(k) }

// KeyUp 按键松开；返回是否为游戏关心的按键
func (l *Loop) KeyUp(k Key) bool { return l.input.Release(k) }

// SetInput 直接设置两个方向标志（自动驾驶等程序化输入）
func (l *Loop) SetInput(in Input) { l.input = in }

// Input 当前方向标志
func (l *Loop) Input() Input { return l.input }

// Status 当前会话状态，未开局时为 Idle
func (l *Loop) Status() Status {
	if l.session == nil {
		return StatusIdle
	}
	return l.session.State.Status
}

// Snapshot 当前会话的只读副本；未开局时 ok 为 false
func (l *Loop) Snapshot() (s Session, ok bool) {
	if l.session == nil {
		return Session{}, false
	}
	return *l.session, true
}

// Ticks 累计 tick 次数
func (l *Loop) Ticks() uint64 { return l.ticks }

// Scheduled 是否已登记下一帧
func (l *Loop) Scheduled() bool { return l.hasPending }

func (l *Loop) tick() {
	l.hasPending = false
	s := l.session
	l.ticks++

	Draw(l.surface, l.cfg, s.State)

	var out Outcome
	s.State, out = Step(l.cfg, s.State, l.input)
	if l.onTick != nil {
		l.onTick(s, out)
	}

	if s.State.Status == StatusGameOver {
		s.EndedAt = time.Now()
		l.log.Info("game over",
			zap.String("session", s.ID),
			zap.Uint64("tick", s.State.Tick),
			zap.Int("paddle_bounces", s.State.PaddleBounces),
			zap.Duration("elapsed", s.EndedAt.Sub(s.StartedAt)))
		if l.onGameOver != nil {
			l.onGameOver(s)
		}
		return
	}

	l.pending = l.sched.RequestFrame(l.tick)
	l.hasPending = true
}
