// Package glfw implements the platform factory on top of GLFW 3.3.
package glfw

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/vkngwrapper/triangle/internal/platform"
)

// Factory creates GLFW platforms and windows.
type Factory struct{}

var _ platform.Factory = Factory{}

func (Factory) Name() string { return "glfw" }

func (Factory) CreatePlatform() (platform.Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}
	return glfwPlatform{}, nil
}

func (Factory) CreateWindow(config platform.WindowConfig) (platform.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.False)

	switch config.API {
	case platform.APIVulkan:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	case platform.APIOpenGL:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	default:
		return nil, errors.Errorf("glfw: unsupported graphics api %s", config.API)
	}

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw create window")
	}

	// Sticky keys hold a press until GetKey has seen it.
	window.SetInputMode(glfw.StickyKeysMode, glfw.True)

	if config.API == platform.APIOpenGL {
		window.MakeContextCurrent()
		glfw.SwapInterval(1)
	}

	return &glfwWindow{window: window, api: config.API}, nil
}

type glfwPlatform struct{}

func (glfwPlatform) Name() string { return "glfw" }

func (glfwPlatform) Terminate() {
	glfw.Terminate()
}

type glfwWindow struct {
	window *glfw.Window
	api    platform.API
}

var keyMap = map[platform.Key]glfw.Key{
	platform.KeyEscape: glfw.KeyEscape,
}

func (w *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *glfwWindow) IsClosed() bool {
	return w.window.ShouldClose()
}

func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindow) NativeHandle() any {
	return w.window
}

func (w *glfwWindow) KeyDown(key platform.Key) bool {
	glfwKey, ok := keyMap[key]
	if !ok {
		return false
	}
	return w.window.GetKey(glfwKey) == glfw.Press
}

func (w *glfwWindow) SwapBuffers() {
	if w.api == platform.APIOpenGL {
		w.window.SwapBuffers()
	}
}

func (w *glfwWindow) Destroy() {
	w.window.Destroy()
}
