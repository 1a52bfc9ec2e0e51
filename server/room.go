package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"paddleball/game"
)

// RoomView 房间对外可见的只读摘要，每个 Tick 结束时刷新
type RoomView struct {
	ID      string      `json:"id"`
	Session string      `json:"session,omitempty"`
	Status  game.Status `json:"status"`
	Tick    uint64      `json:"tick"`
	Clients int         `json:"clients"`
}

// Room 房间：一个权威的游戏主循环，所有状态只在 Tick 线程中修改
type Room struct {
	ID string

	loop    *game.Loop
	frames  *game.FrameQueue
	rec     *game.Recorder
	clients map[ClientID]*ClientConn
	lastSeq map[ClientID]int64

	intentChan chan Intent
	joinChan   chan joinRequest
	leaveChan  chan joinRequest
	done       chan struct{}

	// 保证 shutdown 排空 joinChan 之后不会再有加入请求入队
	joinMu sync.Mutex
	closed bool

	// 热更新配置：HTTP 线程写入，Tick 线程在下一帧开始时取走
	cfgMu    sync.RWMutex
	cfg      game.Config
	cfgDirty bool

	tickRate  int
	lastFrame []byte
	notices   [][]byte // 本帧产生的通知，在帧广播之后发送
	view      atomic.Pointer[RoomView]
	metrics   *RoomMetrics
	log       *zap.SugaredLogger
}

// NewRoom 创建房间，初始化数据结构；此时游戏处于 Idle，等待 start 指令
func NewRoom(id string, cfg game.Config, tickRate int) (*Room, error) {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	r := &Room{
		ID:         id,
		frames:     game.NewFrameQueue(),
		rec:        &game.Recorder{},
		clients:    make(map[ClientID]*ClientConn),
		lastSeq:    make(map[ClientID]int64),
		intentChan: make(chan Intent, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		joinChan:   make(chan joinRequest, 64),
		leaveChan:  make(chan joinRequest, 64),
		done:       make(chan struct{}),
		cfg:        cfg,
		tickRate:   tickRate,
		metrics:    &RoomMetrics{},
		log:        Log.With("room", id),
	}
	loop, err := game.NewLoop(cfg, r.frames, r.rec,
		game.WithLogger(r.log.Desugar()),
		game.OnTick(r.onTick),
		game.OnGameOver(r.onGameOver),
	)
	if err != nil {
		return nil, err
	}
	r.loop = loop
	r.publishView()
	return r, nil
}

// Metrics 房间指标
func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// View 最近一次 Tick 后的摘要
func (r *Room) View() RoomView { return *r.view.Load() }

// Config 当前（或待生效的）游戏配置
func (r *Room) Config() game.Config {
	r.cfgMu.RLock()
	defer r.cfgMu.RUnlock()
	return r.cfg
}

// UpdateConfig 校验并登记新配置，下一局开始时生效
func (r *Room) UpdateConfig(cfg game.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cfgMu.Lock()
	r.cfg = cfg
	r.cfgDirty = true
	r.cfgMu.Unlock()
	return nil
}

// JoinClient 请求在 Tick 线程中加入客户端
func (r *Room) JoinClient(id ClientID, conn *ClientConn) bool {
	r.joinMu.Lock()
	defer r.joinMu.Unlock()
	if r.closed {
		return false
	}
	select {
	case r.joinChan <- joinRequest{id: id, conn: conn}:
		return true
	case <-r.done:
		return false
	}
}

// RequestLeave 请求在 Tick 线程中移除客户端，避免并发改动房间状态。
// 只有 conn 仍是该 id 的当前连接时才会移除（同 id 重连后旧连接的离开请求被忽略）
func (r *Room) RequestLeave(id ClientID, conn *ClientConn) {
	select {
	case r.leaveChan <- joinRequest{id: id, conn: conn}:
	case <-r.done:
	}
}

// OnIntent 入站意图（不立即生效），等下一次 Tick 处理
func (r *Room) OnIntent(in Intent) {
	// 不阻塞：输入拥塞时丢弃，保证 Tick 准时
	select {
	case r.intentChan <- in:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// BeginTick 帧开始：应用待生效的配置
func (r *Room) BeginTick() {
	r.cfgMu.Lock()
	dirty, cfg := r.cfgDirty, r.cfg
	r.cfgDirty = false
	r.cfgMu.Unlock()
	if !dirty {
		return
	}
	if err := r.loop.SetConfig(cfg); err != nil {
		r.log.Warnf("config rejected by loop: %v", err)
		return
	}
	r.log.Infof("config staged for next session: %+v", cfg)
}

// ProcessIntents 处理当前帧的所有加入/离开/输入（非阻塞 drain）
func (r *Room) ProcessIntents() {
	for {
		select {
		case req := <-r.joinChan:
			r.addClient(req)
		case req := <-r.leaveChan:
			r.removeClient(req)
		case in := <-r.intentChan:
			r.applyIntent(in)
		default:
			return
		}
	}
}

func (r *Room) addClient(req joinRequest) {
	if old, ok := r.clients[req.id]; ok && old != req.conn {
		old.Close()
	}
	r.clients[req.id] = req.conn
	delete(r.lastSeq, req.id)
	if r.lastFrame != nil {
		req.conn.Enqueue(r.lastFrame)
	}
	r.log.Infof("client joined: %s (clients=%d)", req.id, len(r.clients))
}

func (r *Room) removeClient(req joinRequest) {
	c, ok := r.clients[req.id]
	if !ok || c != req.conn {
		return
	}
	c.Close()
	delete(r.clients, req.id)
	delete(r.lastSeq, req.id)
	r.log.Infof("client left: %s (clients=%d)", req.id, len(r.clients))
}

func (r *Room) applyIntent(in Intent) {
	if in.Seq > 0 {
		if in.Seq <= r.lastSeq[in.ClientID] {
			r.metrics.IncOldSeqIgnored()
			return
		}
		r.lastSeq[in.ClientID] = in.Seq
	}

	switch in.Kind {
	case IntentStart:
		r.metrics.IncAccepted()
		r.metrics.IncRestarts()
		r.loop.Start()
	case IntentKeyDown, IntentKeyUp:
		var ok bool
		if in.Kind == IntentKeyDown {
			ok = r.loop.KeyDown(in.Key)
		} else {
			ok = r.loop.KeyUp(in.Key)
		}
		if !ok {
			r.metrics.IncUnknownKey()
			r.log.Debugf("ignored key %q from %s", in.RawKey, in.ClientID)
			return
		}
		r.metrics.IncAccepted()
	}
}

// BroadcastFrame 将本帧录制的绘图指令与状态广播给所有客户端（文本 JSON）
func (r *Room) BroadcastFrame() {
	ops := lastClear(r.rec.Take())
	if len(ops) == 0 {
		return
	}
	snap, ok := r.loop.Snapshot()
	if !ok {
		return
	}
	b, err := json.Marshal(FrameMessage{
		Type:    "frame",
		Room:    r.ID,
		Session: snap.ID,
		Status:  snap.State.Status,
		Tick:    snap.State.Tick,
		State:   snap.State,
		Ops:     ops,
	})
	if err != nil {
		r.log.Errorf("marshal frame: %v", err)
		return
	}
	r.lastFrame = b
	r.broadcast(b)
	r.metrics.IncBroadcast()
}

// lastClear 同一帧内重开会录制两段画面，只保留最后一次清屏之后的指令
func lastClear(ops []game.DrawOp) []game.DrawOp {
	for i := len(ops) - 1; i > 0; i-- {
		if ops[i].Op == "clearRect" {
			return ops[i:]
		}
	}
	return ops
}

func (r *Room) broadcast(b []byte) {
	for _, c := range r.clients {
		c.Enqueue(b)
	}
}

func (r *Room) onTick(_ *game.Session, out game.Outcome) {
	if out.PaddleBounce {
		r.metrics.IncPaddleBounces()
	}
	if out.WallBounce || out.CeilingBounce {
		r.metrics.IncWallBounces()
	}
}

func (r *Room) onGameOver(s *game.Session) {
	r.metrics.IncGameOvers()
	b, err := json.Marshal(GameOverMessage{
		Type:          "gameover",
		Room:          r.ID,
		Session:       s.ID,
		Tick:          s.State.Tick,
		PaddleBounces: s.State.PaddleBounces,
		DurationMs:    s.EndedAt.Sub(s.StartedAt).Milliseconds(),
	})
	if err != nil {
		r.log.Errorf("marshal gameover: %v", err)
		return
	}
	r.notices = append(r.notices, b)
}

// FlushNotices 发送本帧积累的通知
func (r *Room) FlushNotices() {
	for _, b := range r.notices {
		r.broadcast(b)
	}
	r.notices = nil
}

func (r *Room) publishView() {
	v := &RoomView{ID: r.ID, Status: r.loop.Status(), Clients: len(r.clients)}
	if snap, ok := r.loop.Snapshot(); ok {
		v.Session = snap.ID
		v.Tick = snap.State.Tick
	}
	r.view.Store(v)
}

// shutdown 关闭所有连接；仅在 Tick 线程退出时调用
func (r *Room) shutdown() {
	close(r.done)
	r.joinMu.Lock()
	r.closed = true
	r.joinMu.Unlock()
	for id, c := range r.clients {
		c.Close()
		delete(r.clients, id)
	}
	// 已排队但未处理的加入请求也要关闭，否则其写协程永远阻塞
	for {
		select {
		case req := <-r.joinChan:
			req.conn.Close()
			continue
		default:
		}
		break
	}
	r.log.Info("room stopped")
}
