package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"go.uber.org/zap"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// Host is the window the engine runs in. window.Window satisfies it.
type Host interface {
	viewer.FrameSource

	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetPointerCallback(callback func(ev common.PointerEvent))

	// ProcessMessages blocks until the window closes.
	ProcessMessages()
	RequestClose()
	Width() int
	Height() int
}

// engine implements the Engine interface.
// Everything runs on the window thread: input callbacks, frame callbacks and the update hook are
// interleaved by the message loop.
type engine struct {
	window Host

	sessions map[int]*viewer.Session

	profiler         *profiler.Profiler
	profilingEnabled bool
	profilerOptions  []profiler.ProfilerOption

	toggleKey      uint32
	updateCallback func()

	running  bool
	runCtx   context.Context
	cancel   context.CancelFunc
	quitOnce sync.Once

	logger *zap.Logger
}

// Engine is the main entry point. It owns the window, the viewer sessions drawn into it, and the
// profiler, and routes window input to the sessions.
type Engine interface {
	// Window returns the host window.
	//
	// Returns:
	//   - Host: the window, or nil
	Window() Host

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetToggleKey sets the key that flips every session between orbit and fly-through.
	//
	// Parameters:
	//   - keyCode: the key code (see common.KeyCode)
	SetToggleKey(keyCode uint32)

	// SetUpdateCallback registers a function called once per message loop iteration, after the
	// frame callbacks.
	//
	// Parameters:
	//   - callback: the function, or nil
	SetUpdateCallback(callback func())

	// AddSession registers a session at the given z-index key. Input reaches sessions in ascending
	// key order. A session added while running is started immediately.
	//
	// Parameters:
	//   - key: the z-index
	//   - s: the session
	//
	// Returns:
	//   - error: error if a running session could not be started
	AddSession(key int, s *viewer.Session) error

	// RemoveSession stops and removes the session at key.
	//
	// Parameters:
	//   - key: the z-index of the session to remove
	RemoveSession(key int)

	// Session retrieves the session registered at key, or nil.
	//
	// Parameters:
	//   - key: the z-index
	//
	// Returns:
	//   - *viewer.Session: the session, or nil
	Session(key int) *viewer.Session

	// Sessions returns a copy of all registered sessions keyed by z-index.
	//
	// Returns:
	//   - map[int]*viewer.Session: a copy of the sessions map
	Sessions() map[int]*viewer.Session

	// Run starts every session's frame loop and runs the message loop until the window closes.
	//
	// Returns:
	//   - error: ErrNoWindow, or a session start failure
	Run() error

	// Quit stops every session and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine and hooks the window's input callbacks.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		sessions:  make(map[int]*viewer.Session),
		toggleKey: common.KeyM,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(append([]profiler.ProfilerOption{profiler.WithLogger(e.logger)}, e.profilerOptions...)...)

	if e.window != nil {
		e.window.SetPointerCallback(func(ev common.PointerEvent) {
			for _, s := range e.ordered() {
				s.HandlePointer(ev)
			}
		})
		e.window.SetScrollCallback(func(delta float32) {
			for _, s := range e.ordered() {
				s.HandleScroll(delta)
			}
		})
		e.window.SetKeyDownCallback(e.handleKey)
		e.window.SetResizeCallback(func(width, height int) {
			for _, s := range e.ordered() {
				s.Resize(width, height)
			}
		})
		e.window.SetUpdateCallback(e.update)
	}

	return e
}

func (e *engine) Window() Host {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetToggleKey(keyCode uint32) {
	e.toggleKey = keyCode
}

func (e *engine) SetUpdateCallback(callback func()) {
	e.updateCallback = callback
}

func (e *engine) AddSession(key int, s *viewer.Session) error {
	if old, ok := e.sessions[key]; ok && old != s {
		old.Stop()
	}
	e.sessions[key] = s
	if e.window != nil {
		s.Resize(e.window.Width(), e.window.Height())
	}
	if e.running && !s.Running() {
		if err := s.Start(e.context()); err != nil {
			return fmt.Errorf("failed to start session %d: %w", key, err)
		}
	}
	return nil
}

func (e *engine) RemoveSession(key int) {
	if s, ok := e.sessions[key]; ok {
		s.Stop()
		delete(e.sessions, key)
	}
}

func (e *engine) Session(key int) *viewer.Session {
	return e.sessions[key]
}

func (e *engine) Sessions() map[int]*viewer.Session {
	cp := make(map[int]*viewer.Session, len(e.sessions))
	for k, v := range e.sessions {
		cp[k] = v
	}
	return cp
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	ctx := e.context()
	for _, s := range e.ordered() {
		if err := s.Start(ctx); err != nil {
			e.Quit()
			return fmt.Errorf("failed to start session %s: %w", s.ID(), err)
		}
	}
	e.running = true
	e.logger.Info("engine running", zap.Int("sessions", len(e.sessions)))

	e.window.ProcessMessages()
	e.Quit()
	return nil
}

// Quit stops every session once and asks the window to close.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running = false
		for _, s := range e.ordered() {
			s.Stop()
		}
		if e.cancel != nil {
			e.cancel()
		}
		if e.window != nil {
			e.window.RequestClose()
		}
		e.logger.Info("engine stopped")
	})
}

// context returns the run context, creating it on first use.
func (e *engine) context() context.Context {
	if e.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel
		e.runCtx = ctx
	}
	return e.runCtx
}

// ordered returns the sessions in ascending z-index order.
func (e *engine) ordered() []*viewer.Session {
	keys := make([]int, 0, len(e.sessions))
	for k := range e.sessions {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]*viewer.Session, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.sessions[k])
	}
	return out
}

func (e *engine) handleKey(keyCode uint32) {
	if keyCode != e.toggleKey {
		return
	}
	for _, s := range e.ordered() {
		s.ToggleMode()
	}
}

func (e *engine) update() {
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	if e.updateCallback != nil {
		e.updateCallback()
	}
}
