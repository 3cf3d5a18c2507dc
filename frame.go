package easel

// FrameHandle identifies a requested frame callback. The zero handle is
// never issued.
type FrameHandle uint64

// FrameScheduler runs callbacks at the next display refresh, in the manner
// of a browser's requestAnimationFrame.
type FrameScheduler interface {
	// RequestFrame schedules fn to run once at the next frame.
	RequestFrame(fn func()) FrameHandle
	// CancelFrame drops a callback that has not run yet. Cancelling an
	// unknown or already-run handle is a no-op.
	CancelFrame(h FrameHandle)
}

// FrameQueue is a FrameScheduler driven by explicit calls to Tick. The
// ebiten [Loop] ticks its queue once per update; tests and headless tools
// tick it by hand.
//
// A FrameQueue is not safe for concurrent use; request, cancel and tick
// from the goroutine that owns the display.
type FrameQueue struct {
	next    FrameHandle
	pending []frameRequest
	running []frameRequest // batch of the Tick in progress
}

type frameRequest struct {
	h  FrameHandle
	fn func()
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame implements FrameScheduler.
func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.next++
	q.pending = append(q.pending, frameRequest{h: q.next, fn: fn})
	return q.next
}

// CancelFrame implements FrameScheduler.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, req := range q.pending {
		if req.h == h {
			q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.running {
		if q.running[i].h == h {
			q.running[i].fn = nil
			return
		}
	}
}

// Tick runs the callbacks requested before the call, in request order, and
// returns how many ran. Callbacks requested while ticking wait for the next
// tick; callbacks cancelled while ticking do not run.
func (q *FrameQueue) Tick() int {
	q.running = q.pending
	q.pending = nil
	defer func() { q.running = nil }()

	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn()
		ran++
	}
	return ran
}

// Len returns the number of callbacks waiting for the next tick.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}

// DefaultFrames is the scheduler used by renderers created without
// [WithScheduler].
var DefaultFrames = NewFrameQueue()
