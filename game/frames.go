package game

// FrameID RequestFrame 返回的句柄，用于取消
type FrameID uint64

// Scheduler 每帧回调原语（仿 requestAnimationFrame / cancelAnimationFrame）
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameCallback struct {
	id FrameID
	fn func()
}

// FrameQueue 单线程帧队列：RunFrame 只执行调用前已登记的回调，
// 回调中再次登记的在下一帧执行。非并发安全，由拥有它的 goroutine 独占。
type FrameQueue struct {
	nextID  FrameID
	pending []frameCallback
	current []frameCallback // 正在执行的这一帧
	running bool
}

// NewFrameQueue 创建空队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame 登记下一帧回调
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameCallback{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame 取消尚未执行的回调；未知或已执行的 id 忽略
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, cb := range q.pending {
		if cb.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// 同一帧内前面的回调取消了后面的回调
	for i := range q.current {
		if q.current[i].id == id {
			q.current[i].fn = nil
			return
		}
	}
}

// Pending 已登记未执行的回调数
func (q *FrameQueue) Pending() int { return len(q.pending) }

// RunFrame 执行一帧，返回实际执行的回调数；重入时直接返回 0
func (q *FrameQueue) RunFrame() int {
	if q.running {
		return 0
	}
	q.running = true
	defer func() { q.running = false }()

	q.current = q.pending
	q.pending = nil
	defer func() { q.current = nil }()
	n := 0
	for i := range q.current {
		fn := q.current[i].fn
		if fn == nil {
			continue
		}
		q.current[i].fn = nil
		fn()
		n++
	}
	return n
}
