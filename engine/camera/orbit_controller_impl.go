package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// settleEpsilon is the pending rotation below which damping snaps to rest.
const settleEpsilon = 1e-6

// orbitControllerImpl is the single implementation of OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	target mgl32.Vec3

	enabled bool

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Input tuning
	rotateSpeed   float32
	zoomSpeed     float32
	dampingFactor float32

	// Pending input, consumed by Update
	pendingAzimuth   float32
	pendingElevation float32
	pendingZoom      float32

	// Drag state for HandlePointer
	dragging   bool
	dragSource common.PointerSource
	dragID     int
	lastX      float32
	lastY      float32
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an enabled orbit controller for the given camera.
// Defaults mirror a typical model viewer: target (0, 0.5, 0), damping 0.1, no panning.
// Update is called once before returning so the camera faces the target immediately.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam Camera, options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:      &sync.Mutex{},
		camera:  cam,
		target:  mgl32.Vec3{0, 0.5, 0},
		enabled: true,

		minRadius:    0.1,
		maxRadius:    1000.0,
		minElevation: -float32(math.Pi/2 - 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		rotateSpeed:   0.005,
		zoomSpeed:     0.5,
		dampingFactor: 0.1,
	}

	for _, option := range options {
		option(oc)
	}

	oc.mu.Lock()
	oc.apply()
	oc.mu.Unlock()
	return oc
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.pendingAzimuth = 0
		oc.pendingElevation = 0
		oc.pendingZoom = 0
		oc.dragging = false
	}
}

func (oc *orbitControllerImpl) Update() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.apply()
}

func (oc *orbitControllerImpl) Rotate(dAzimuth, dElevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.pendingAzimuth += dAzimuth
	oc.pendingElevation += dElevation
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.pendingZoom += delta * oc.zoomSpeed
}

func (oc *orbitControllerImpl) HandlePointer(ev common.PointerEvent) {
	oc.mu.Lock()
	if !oc.enabled {
		oc.mu.Unlock()
		return
	}

	switch ev.Kind {
	case common.PointerPress:
		if len(ev.Points) == 0 || !ev.Points[0].Valid() {
			break
		}
		p := ev.Points[0]
		oc.dragging = true
		oc.dragSource = ev.Source
		oc.dragID = p.ID
		oc.lastX, oc.lastY = p.X, p.Y
	case common.PointerMove:
		if !oc.dragging || ev.Source != oc.dragSource {
			break
		}
		p, ok := ev.Point(oc.dragID)
		if !ok || !p.Valid() {
			break
		}
		dx := p.X - oc.lastX
		dy := p.Y - oc.lastY
		oc.lastX, oc.lastY = p.X, p.Y
		// Dragging right swings the camera left around the target; dragging down raises it.
		oc.pendingAzimuth -= dx * oc.rotateSpeed
		oc.pendingElevation += dy * oc.rotateSpeed
	case common.PointerRelease:
		oc.dragging = false
	}
	oc.mu.Unlock()
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitControllerImpl) Camera() Camera {
	return oc.camera
}

func (oc *orbitControllerImpl) MinRadius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minRadius
}

func (oc *orbitControllerImpl) MaxRadius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.maxRadius
}

func (oc *orbitControllerImpl) MinElevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minElevation
}

func (oc *orbitControllerImpl) MaxElevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.maxElevation
}

// --- internal helpers ---

// apply converts the camera's current offset from the target to spherical coordinates, applies
// damped rotation and zoom, clamps, and writes the resulting look-at pose back to the camera.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) apply() {
	offset := oc.camera.Position().Sub(oc.target)

	radius := offset.Len()
	var azimuth, elevation float32
	if radius < 1e-8 {
		radius = oc.minRadius
	} else {
		azimuth = math32.Atan2(offset.X(), offset.Z())
		elevation = math32.Asin(mgl32.Clamp(offset.Y()/radius, -1, 1))
	}

	azimuth += oc.pendingAzimuth * oc.dampingFactor
	elevation += oc.pendingElevation * oc.dampingFactor
	oc.pendingAzimuth *= 1 - oc.dampingFactor
	oc.pendingElevation *= 1 - oc.dampingFactor
	if math32.Abs(oc.pendingAzimuth) < settleEpsilon {
		oc.pendingAzimuth = 0
	}
	if math32.Abs(oc.pendingElevation) < settleEpsilon {
		oc.pendingElevation = 0
	}

	radius -= oc.pendingZoom
	oc.pendingZoom = 0

	radius = common.Clamp(radius, oc.minRadius, oc.maxRadius)
	elevation = common.Clamp(elevation, oc.minElevation, oc.maxElevation)

	sinElev, cosElev := math32.Sincos(elevation)
	sinAzim, cosAzim := math32.Sincos(azimuth)
	position := oc.target.Add(mgl32.Vec3{
		radius * cosElev * sinAzim,
		radius * sinElev,
		radius * cosElev * cosAzim,
	})

	oc.camera.SetPose(LookAtPose(position, oc.target))
}
