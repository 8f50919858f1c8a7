// Package sdl implements the platform factory on top of SDL2.
package sdl

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vkngwrapper/triangle/internal/platform"
)

// Factory creates SDL platforms and windows.
type Factory struct{}

var _ platform.Factory = Factory{}

func (Factory) Name() string { return "sdl" }

func (Factory) CreatePlatform() (platform.Platform, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "sdl init")
	}
	return sdlPlatform{}, nil
}

func (Factory) CreateWindow(config platform.WindowConfig) (platform.Window, error) {
	flags := uint32(sdl.WINDOW_SHOWN)
	switch config.API {
	case platform.APIVulkan:
		flags |= sdl.WINDOW_VULKAN
	case platform.APIOpenGL:
		flags |= sdl.WINDOW_OPENGL
		attrs := []struct {
			attr  sdl.GLattr
			value int
		}{
			{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
			{sdl.GL_CONTEXT_MINOR_VERSION, 1},
			{sdl.GL_CONTEXT_PROFILE_MASK, int(sdl.GL_CONTEXT_PROFILE_CORE)},
			{sdl.GL_DOUBLEBUFFER, 1},
		}
		for _, a := range attrs {
			if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
				return nil, errors.Wrap(err, "setting gl attribute")
			}
		}
	default:
		return nil, errors.Errorf("sdl: unsupported graphics api %s", config.API)
	}

	window, err := sdl.CreateWindow(config.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(config.Width), int32(config.Height), flags)
	if err != nil {
		return nil, errors.Wrap(err, "sdl create window")
	}

	w := &sdlWindow{
		window: window,
		api:    config.API,
	}

	if config.API == platform.APIOpenGL {
		w.context, err = window.GLCreateContext()
		if err != nil {
			w.Destroy()
			return nil, errors.Wrap(err, "sdl create gl context")
		}
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.Destroy()
			return nil, errors.Wrap(err, "sdl swap interval")
		}
	}

	return w, nil
}

type sdlPlatform struct{}

func (sdlPlatform) Name() string { return "sdl" }

func (sdlPlatform) Terminate() {
	sdl.Quit()
}

type sdlWindow struct {
	window  *sdl.Window
	context sdl.GLContext
	api     platform.API
	closed  bool
	keys    platform.KeyState
}

// Teardown calls, replaced in tests.
var (
	deleteContext = sdl.GLDeleteContext
	destroyWindow = (*sdl.Window).Destroy
)

func translateKey(sym sdl.Keycode) platform.Key {
	switch sym {
	case sdl.K_ESCAPE:
		return platform.KeyEscape
	}
	return platform.KeyUnknown
}

func (w *sdlWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handleEvent(event)
	}
}

func (w *sdlWindow) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		w.closed = true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_CLOSE {
			w.closed = true
		}
	case *sdl.KeyboardEvent:
		if key := translateKey(e.Keysym.Sym); key != platform.KeyUnknown {
			w.keys.Set(key, e.State == sdl.PRESSED)
		}
	}
}

func (w *sdlWindow) IsClosed() bool {
	return w.closed
}

func (w *sdlWindow) FramebufferSize() (int, int) {
	var width, height int32
	if w.api == platform.APIVulkan {
		width, height = w.window.VulkanGetDrawableSize()
	} else {
		width, height = w.window.GLGetDrawableSize()
	}
	return int(width), int(height)
}

func (w *sdlWindow) NativeHandle() any {
	return w.window
}

func (w *sdlWindow) KeyDown(key platform.Key) bool {
	return w.keys.Sample(key)
}

func (w *sdlWindow) SwapBuffers() {
	if w.api == platform.APIOpenGL {
		w.window.GLSwap()
	}
}

func (w *sdlWindow) Destroy() {
	if w.context != nil {
		deleteContext(w.context)
		w.context = nil
	}
	if w.window != nil {
		destroyWindow(w.window)
		w.window = nil
	}
}
