package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyM     = 77  // M key (ASCII), default mode toggle
	KeyO     = 79  // O key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyTab   = 258 // Tab key (GLFW)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// keyNames maps the configurable key names to their codes.
var keyNames = map[string]uint32{
	"m":     KeyM,
	"o":     KeyO,
	"r":     KeyR,
	"tab":   KeyTab,
	"space": KeySpace,
}

// KeyCode resolves a configurable key name ("m", "tab", "space", ...) to its key code.
//
// Parameters:
//   - name: lower-case key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyCode(name string) (uint32, bool) {
	code, ok := keyNames[name]
	return code, ok
}
