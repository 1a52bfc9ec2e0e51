package server

import (
	"context"
	"time"
)

const (
	// DefaultTickRate 帧率，对应浏览器 requestAnimationFrame 的 ~60Hz
	DefaultTickRate = 60
)

// Run 启动房间的 Tick 循环（单线程推进），ctx 取消后关闭所有连接并返回
func (r *Room) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickRate))
	defer ticker.Stop()
	defer r.shutdown()

	r.log.Infof("room ticking at %d fps", r.tickRate)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick 执行一帧：运行上一帧登记的回调（游戏主循环）→ 处理意图 → 广播结果。
// start 会立即执行新会话的第一帧，所以意图在 RunFrame 之后处理，每个会话每帧最多推进一次。
func (r *Room) Tick() {
	start := time.Now()
	r.BeginTick()
	r.frames.RunFrame()
	r.ProcessIntents()
	r.BroadcastFrame()
	r.FlushNotices()
	r.publishView()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}
