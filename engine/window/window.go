package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetPointerCallback sets the callback for left mouse button presses, releases and cursor
	// movement. Coordinates are framebuffer pixels from the top-left corner.
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerCallback(callback func(ev common.PointerEvent))

	// RequestFrame schedules cb to run once on the next message loop iteration.
	//
	// Parameters:
	//   - cb: the frame callback
	//
	// Returns:
	//   - common.FrameHandle: handle that can cancel the request
	RequestFrame(cb func()) common.FrameHandle

	// CancelFrame cancels a pending frame request.
	//
	// Parameters:
	//   - h: the handle returned by RequestFrame
	CancelFrame(h common.FrameHandle)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to exit after the current iteration. Safe to call from
	// inside input callbacks.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls input, runs the frame callbacks
	// requested before it, then calls the update callback.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Resize limits in screen coordinates; -1 leaves a bound unset.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// Current framebuffer size in pixels.
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32) // positive scrolls up (zoom in)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
	onPointer func(ev common.PointerEvent)

	// frames holds callbacks requested for the next loop iteration.
	frames *common.FrameQueue
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window, already shown
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-viewer",
		minWidth:  400,
		minHeight: 300,
		maxWidth:  -1,
		maxHeight: -1,
		width:     1280,
		height:    720,
		frames:    common.NewFrameQueue(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetPointerCallback(callback func(ev common.PointerEvent)) {
	w.onPointer = callback
}

func (w *engineWindow) RequestFrame(cb func()) common.FrameHandle {
	return w.frames.RequestFrame(cb)
}

func (w *engineWindow) CancelFrame(h common.FrameHandle) {
	w.frames.CancelFrame(h)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		w.frames.Run()

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
