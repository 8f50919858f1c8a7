// Package platform abstracts the windowing backend: a Factory produces a
// matched Platform and Window pair, and a Manager owns that pair for the
// lifetime of the process.
package platform

// API is the graphics API a window is created for.
type API int

const (
	APIOpenGL API = iota
	APIVulkan
)

func (a API) String() string {
	switch a {
	case APIOpenGL:
		return "opengl"
	case APIVulkan:
		return "vulkan"
	}
	return "unknown"
}

// Key identifies a physical keyboard key.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

// WindowConfig describes the single application window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	API    API
}

// Platform is an initialised windowing library.
type Platform interface {
	Name() string
	Terminate()
}

// Window is an OS window created by a Factory.
type Window interface {
	// PollEvents drains queued events without blocking.
	PollEvents()
	IsClosed() bool
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
	// NativeHandle returns the backend's window object (*sdl.Window,
	// *glfw.Window) for graphics surface creation.
	NativeHandle() any
	// KeyDown reports whether key is down as of the last PollEvents, or
	// was pressed since the previous KeyDown for it.
	KeyDown(key Key) bool
	// SwapBuffers presents a finished OpenGL frame. Windows created for
	// Vulkan treat it as a no-op.
	SwapBuffers()
	Destroy()
}

// Factory creates the platform and window for one windowing backend.
type Factory interface {
	Name() string
	CreatePlatform() (Platform, error)
	CreateWindow(config WindowConfig) (Window, error)
}
