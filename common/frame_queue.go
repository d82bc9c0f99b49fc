package common

// FrameHandle identifies a pending frame request. The zero handle is never issued.
type FrameHandle uint64

// FrameQueue holds frame callbacks requested for the next display frame. The window message loop
// drains it once per iteration. It is not safe for concurrent use; requests and runs happen on the
// UI thread.
type FrameQueue struct {
	next    FrameHandle
	order   []FrameHandle
	pending map[FrameHandle]func()
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameHandle]func())}
}

// RequestFrame schedules cb for the next Run.
//
// Parameters:
//   - cb: the callback
//
// Returns:
//   - FrameHandle: handle for CancelFrame
func (q *FrameQueue) RequestFrame(cb func()) FrameHandle {
	q.next++
	q.pending[q.next] = cb
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame removes a pending request. Unknown or already-run handles are ignored.
//
// Parameters:
//   - h: the handle to cancel
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if _, ok := q.pending[h]; !ok {
		return
	}
	delete(q.pending, h)
	for i, o := range q.order {
		if o == h {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// Pending returns the number of callbacks waiting for the next Run.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Run executes the callbacks pending at call time in request order. Callbacks requested while
// running wait for the next Run; callbacks cancelled while running are skipped.
//
// Returns:
//   - int: the number of callbacks run
func (q *FrameQueue) Run() int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, h := range batch {
		cb, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		cb()
		ran++
	}
	return ran
}
