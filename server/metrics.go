package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	FramesBroadcast   int64 // 实际广播的帧数
	IntentsAccepted   int64 // 被接受的意图数
	OldSeqIgnored     int64 // 因旧序列被忽略的意图数
	UnknownKeys       int64 // 非方向键
	ChanFullDiscarded int64 // 因通道满被丢弃的意图数
	Restarts          int64 // 开局/重开次数
	GameOvers         int64 // 结束局数
	PaddleBounces     int64
	WallBounces       int64
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.IntentsAccepted, 1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *RoomMetrics) IncUnknownKey()        { atomic.AddInt64(&m.UnknownKeys, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncRestarts()          { atomic.AddInt64(&m.Restarts, 1) }
func (m *RoomMetrics) IncGameOvers()         { atomic.AddInt64(&m.GameOvers, 1) }
func (m *RoomMetrics) IncBroadcast()         { atomic.AddInt64(&m.FramesBroadcast, 1) }
func (m *RoomMetrics) IncPaddleBounces()     { atomic.AddInt64(&m.PaddleBounces, 1) }
func (m *RoomMetrics) IncWallBounces()       { atomic.AddInt64(&m.WallBounces, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"frames_broadcast":    atomic.LoadInt64(&m.FramesBroadcast),
		"intents_accepted":    atomic.LoadInt64(&m.IntentsAccepted),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"unknown_keys":        atomic.LoadInt64(&m.UnknownKeys),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"restarts":            atomic.LoadInt64(&m.Restarts),
		"game_overs":          atomic.LoadInt64(&m.GameOvers),
		"paddle_bounces":      atomic.LoadInt64(&m.PaddleBounces),
		"wall_bounces":        atomic.LoadInt64(&m.WallBounces),
		"avg_tick_ms":         avgMs,
	}
}
