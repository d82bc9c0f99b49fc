package viewer

import (
	"context"
	"errors"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// ErrSchedulerRunning is returned by FrameScheduler.Start when the loop is already scheduled.
var ErrSchedulerRunning = errors.New("frame scheduler already running")

// FrameSource delivers display-driven frame callbacks on the UI thread, one request at a time.
type FrameSource interface {
	// RequestFrame schedules cb to run once on the next display frame.
	//
	// Parameters:
	//   - cb: the callback to run
	//
	// Returns:
	//   - common.FrameHandle: handle that can cancel the request
	RequestFrame(cb func()) common.FrameHandle

	// CancelFrame cancels a pending request. Cancelling a handle that already ran is a no-op.
	//
	// Parameters:
	//   - h: the handle to cancel
	CancelFrame(h common.FrameHandle)
}

// FrameScheduler runs a frame function on every display frame by re-requesting itself from a
// FrameSource. The pending handle is kept so that Stop cancels the loop deterministically.
type FrameScheduler struct {
	source  FrameSource
	frame   func()
	ctx     context.Context
	handle  common.FrameHandle
	running bool
	frames  uint64
}

// NewFrameScheduler creates a stopped scheduler.
//
// Parameters:
//   - source: where frames come from
//   - frame: the per-frame work; it must not block
//
// Returns:
//   - *FrameScheduler: the scheduler
func NewFrameScheduler(source FrameSource, frame func()) *FrameScheduler {
	return &FrameScheduler{source: source, frame: frame}
}

// Start requests the first frame. The loop ends on Stop or when ctx is done; ctx is checked at the
// top of every frame.
//
// Parameters:
//   - ctx: cancels the loop when done
//
// Returns:
//   - error: ErrSchedulerRunning if already started
func (fs *FrameScheduler) Start(ctx context.Context) error {
	if fs.running {
		return ErrSchedulerRunning
	}
	fs.ctx = ctx
	fs.running = true
	fs.handle = fs.source.RequestFrame(fs.tick)
	return nil
}

// Stop cancels the pending frame. Safe to call when stopped.
func (fs *FrameScheduler) Stop() {
	if fs.handle != 0 {
		fs.source.CancelFrame(fs.handle)
		fs.handle = 0
	}
	fs.running = false
}

// Running reports whether a frame is scheduled.
func (fs *FrameScheduler) Running() bool {
	return fs.running
}

// Frames returns how many frames have run since creation.
func (fs *FrameScheduler) Frames() uint64 {
	return fs.frames
}

func (fs *FrameScheduler) tick() {
	fs.handle = 0
	if !fs.running {
		return
	}
	if fs.ctx != nil && fs.ctx.Err() != nil {
		fs.running = false
		return
	}

	// Request the next frame first; Stop called from inside frame cancels it.
	fs.handle = fs.source.RequestFrame(fs.tick)
	fs.frames++
	fs.frame()
}
