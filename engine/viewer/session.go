package viewer

import (
	"context"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/joystick"
	"github.com/Carmen-Shannon/oxy-viewer/engine/widget"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Renderer draws one frame: the scene from a camera, then the overlay shapes on top.
type Renderer interface {
	Render(cam camera.Camera, overlay []widget.Circle) error
}

type resizer interface {
	Resize(width, height int)
}

type joystickLayout struct {
	radius float32
	size   float32
	margin float32
}

var defaultLayout = joystickLayout{radius: joystick.DefaultRadius, size: 120, margin: 40}

// Session is one viewer instance: it owns the movement state, the mode, the joystick widgets and
// the frame loop for a single camera. Sessions share nothing, so several can run side by side.
//
// A Session is driven from one UI thread; pointer events and frames interleave but never overlap.
type Session struct {
	id uuid.UUID

	camera    camera.Camera
	orbit     camera.OrbitController
	renderer  Renderer
	container widget.Container
	move      *widget.Joystick
	look      *widget.Joystick

	movement   MovementState
	modes      *ModeController
	integrator Integrator
	scheduler  *FrameScheduler

	layout        joystickLayout
	width, height int
	initialMode   Mode

	logger *zap.Logger
}

// NewSession creates a session for cam whose frames come from source. The move joystick is laid
// out bottom-left and the look joystick bottom-right. The initial mode is applied immediately.
//
// Parameters:
//   - cam: the camera to drive
//   - source: display frame source
//   - options: functional options to configure the session
//
// Returns:
//   - *Session: the session, stopped
func NewSession(cam camera.Camera, source FrameSource, options ...SessionBuilderOption) *Session {
	s := &Session{
		id:          uuid.New(),
		camera:      cam,
		integrator:  NewIntegrator(),
		layout:      defaultLayout,
		width:       800,
		height:      600,
		initialMode: ModeOrbit,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id.String()))

	s.container = widget.NewContainer(s.width, s.height)
	s.move = widget.NewJoystick("move",
		joystick.NewTracker(joystick.AxisMove, joystick.WithRadius(s.layout.radius), joystick.WithLogger(s.logger)),
		widget.AnchorBottomLeft, s.layout.margin, s.layout.size,
	)
	s.look = widget.NewJoystick("look",
		joystick.NewTracker(joystick.AxisLook, joystick.WithRadius(s.layout.radius), joystick.WithLogger(s.logger)),
		widget.AnchorBottomRight, s.layout.margin, s.layout.size,
	)
	s.container.AddChild(s.move)
	s.container.AddChild(s.look)

	var toggler Toggler
	if s.orbit != nil {
		toggler = s.orbit
	}
	s.modes = NewModeController(toggler, s.logger)
	s.modes.SetMode(s.initialMode, s.container)

	s.scheduler = NewFrameScheduler(source, s.Frame)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Camera returns the driven camera.
func (s *Session) Camera() camera.Camera {
	return s.camera
}

// Orbit returns the orbit controller, or nil if none was configured.
func (s *Session) Orbit() camera.OrbitController {
	return s.orbit
}

// Container returns the joystick container.
func (s *Session) Container() widget.Container {
	return s.container
}

// MoveJoystick returns the translation joystick widget.
func (s *Session) MoveJoystick() *widget.Joystick {
	return s.move
}

// LookJoystick returns the rotation joystick widget.
func (s *Session) LookJoystick() *widget.Joystick {
	return s.look
}

// Movement returns a copy of the current movement state.
func (s *Session) Movement() MovementState {
	return s.movement
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.modes.Mode()
}

// SetMode switches control mode, showing or hiding the joysticks and toggling the orbit controller.
//
// Parameters:
//   - mode: the target mode
func (s *Session) SetMode(mode Mode) {
	s.modes.SetMode(mode, s.container)
}

// ToggleMode flips between orbit and fly-through.
//
// Returns:
//   - Mode: the new mode
func (s *Session) ToggleMode() Mode {
	if s.modes.Mode() == ModeOrbit {
		s.SetMode(ModeFlyThrough)
	} else {
		s.SetMode(ModeOrbit)
	}
	return s.modes.Mode()
}

// HandlePointer routes a raw pointer event to the orbit controller and the joystick container and
// folds any resulting axis updates into the movement state. Each receiver ignores what its mode
// does not accept.
//
// Parameters:
//   - ev: the pointer event
func (s *Session) HandlePointer(ev common.PointerEvent) {
	if s.orbit != nil {
		s.orbit.HandlePointer(ev)
	}
	for _, u := range s.container.Dispatch(ev) {
		s.movement.Apply(u)
	}
}

// HandleScroll zooms the orbit controller. Ignored in fly-through mode.
//
// Parameters:
//   - delta: scroll amount, positive zooms in
func (s *Session) HandleScroll(delta float32) {
	if s.orbit != nil {
		s.orbit.Zoom(delta)
	}
}

// Resize relays out the joysticks, updates the camera aspect ratio, and resizes the renderer when
// it supports resizing.
//
// Parameters:
//   - width, height: new viewport size in pixels
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.container.Layout(width, height)
	s.camera.SetAspect(float32(width) / float32(height))
	if rs, ok := s.renderer.(resizer); ok {
		rs.Resize(width, height)
	}
}

// Frame runs one frame: the fly-through step when joysticks are active, then the orbit update when
// the orbit controller is enabled, then one render with the joysticks drawn if they are visible.
// The two camera drivers are mutually exclusive through the mode controller's enablement.
func (s *Session) Frame() {
	if s.modes.Mode() == ModeFlyThrough && s.modes.JoystickActive() {
		s.camera.SetPose(s.integrator.Step(s.camera.Pose(), s.movement))
	}
	if s.orbit != nil && s.orbit.Enabled() {
		s.orbit.Update()
	}

	s.camera.Update()
	if s.renderer != nil {
		if err := s.renderer.Render(s.camera, s.container.Shapes()); err != nil {
			s.logger.Warn("render failed", zap.Error(err))
		}
	}
}

// Start begins the frame loop.
//
// Parameters:
//   - ctx: stops the loop when done
//
// Returns:
//   - error: ErrSchedulerRunning if already started
func (s *Session) Start(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return err
	}
	s.logger.Info("viewer session started", zap.Stringer("mode", s.modes.Mode()))
	return nil
}

// Stop cancels the pending frame. No frame runs for this session afterwards until Start.
func (s *Session) Stop() {
	if !s.scheduler.Running() {
		return
	}
	s.scheduler.Stop()
	s.logger.Info("viewer session stopped", zap.Uint64("frames", s.scheduler.Frames()))
}

// Running reports whether the frame loop is scheduled.
func (s *Session) Running() bool {
	return s.scheduler.Running()
}
