package shader

import _ "embed"

// SceneSource draws world-space colored lines through a view-projection uniform at group 0,
// binding 0.
//
//go:embed wgsl/scene.wgsl
var SceneSource string

// OverlaySource draws colored triangles whose positions are already in normalized device
// coordinates.
//
//go:embed wgsl/overlay.wgsl
var OverlaySource string
