package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/vkngwrapper/triangle/internal/platform"
)

// surfaceProvider is the windowing half of instance creation: where the
// loader comes from, which instance extensions the window needs and how
// its surface is made.
type surfaceProvider interface {
	ProcAddr() unsafe.Pointer
	InstanceExtensions() []string
	CreateSurface(instance core1_0.Instance, surfaceExtension khr_surface.ExtensionDriver) (khr_surface.Surface, error)
}

func surfaceProviderFor(window platform.Window) (surfaceProvider, error) {
	switch handle := window.NativeHandle().(type) {
	case *sdl.Window:
		if handle != nil {
			return sdlSurface{window: handle}, nil
		}
	case *glfw.Window:
		if handle != nil {
			return glfwSurface{window: handle}, nil
		}
	}
	return nil, errors.Wrapf(ErrUnsupportedPlatform, "no vulkan surface integration for %T", window.NativeHandle())
}

type sdlSurface struct {
	window *sdl.Window
}

func (s sdlSurface) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (s sdlSurface) InstanceExtensions() []string {
	return s.window.VulkanGetInstanceExtensions()
}

func (s sdlSurface) CreateSurface(instance core1_0.Instance, surfaceExtension khr_surface.ExtensionDriver) (khr_surface.Surface, error) {
	return vkng_sdl2.CreateSurface(instance, surfaceExtension, s.window)
}

type glfwSurface struct {
	window *glfw.Window
}

func (s glfwSurface) ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (s glfwSurface) InstanceExtensions() []string {
	return s.window.GetRequiredInstanceExtensions()
}

func (s glfwSurface) CreateSurface(instance core1_0.Instance, surfaceExtension khr_surface.ExtensionDriver) (khr_surface.Surface, error) {
	if !glfw.VulkanSupported() {
		return khr_surface.Surface{}, errors.Wrap(ErrUnsupportedPlatform, "glfw reports no vulkan loader")
	}

	handle, err := s.window.CreateWindowSurface(instance.Handle(), nil)
	if err != nil {
		return khr_surface.Surface{}, err
	}
	return surfaceFromHandle(surfaceExtension.CreateSurfaceFromHandle, handle)
}

// surfaceFromHandle hands a raw VkSurfaceKHR to the extension's wrapper.
// H is the driver's pointer-sized surface handle type.
func surfaceFromHandle[H any](wrap func(H) (khr_surface.Surface, error), handle uintptr) (khr_surface.Surface, error) {
	var zero H
	if unsafe.Sizeof(zero) != unsafe.Sizeof(handle) {
		return khr_surface.Surface{}, errors.AssertionFailedf("surface handle is %d bytes, want %d", unsafe.Sizeof(zero), unsafe.Sizeof(handle))
	}
	return wrap(*(*H)(unsafe.Pointer(&handle)))
}
