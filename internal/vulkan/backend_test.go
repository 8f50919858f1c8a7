package vulkan

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vkngwrapper/triangle/internal/platform"
	"github.com/vkngwrapper/triangle/internal/platform/platformtest"
	"github.com/vkngwrapper/triangle/internal/render"
)

func TestBackendRejectsUnknownWindow(t *testing.T) {
	factory := platformtest.NewFactory()
	window, err := factory.CreateWindow(platform.WindowConfig{Title: "Template", Width: 800, Height: 600, API: platform.APIVulkan})
	if err != nil {
		t.Fatal(err)
	}

	backend := NewBackend(Options{ApplicationName: "Template"})
	err = backend.Init(window, render.ShaderSources{}, render.Triangle)
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("Init() error = %v, want ErrUnsupportedPlatform", err)
	}

	backend.Destroy()
	backend.Destroy()
}

func TestBackendDrawBeforeInit(t *testing.T) {
	backend := NewBackend(Options{})
	if err := backend.DrawFrame(render.Frame{Width: 800, Height: 600, Transform: mgl32.Ident4()}); err == nil {
		t.Error("DrawFrame() before Init succeeded")
	}
}

func TestBackendDescription(t *testing.T) {
	backend := NewBackend(Options{})
	if backend.Name() != "vulkan" || backend.API() != platform.APIVulkan {
		t.Errorf("backend = %s/%s", backend.Name(), backend.API())
	}
	if vert, frag := backend.ShaderPaths(); vert != VertexShaderPath || frag != FragmentShaderPath {
		t.Errorf("ShaderPaths() = %q, %q", vert, frag)
	}
}

func TestClipCorrectionFlipsY(t *testing.T) {
	top := clipCorrection.Mul4(render.Transform(1, 0)).Mul4x1(mgl32.Vec4{0, 0.6, 0, 1})
	if !mgl32.FloatEqual(top.Y(), -0.6) || !mgl32.FloatEqual(top.X(), 0) {
		t.Errorf("apex maps to %v, want y = -0.6", top)
	}
}

func TestBytesToBytecode(t *testing.T) {
	got := bytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	if len(got) != 2 || got[0] != 0x07230203 || got[1] != 0x00010000 {
		t.Errorf("bytesToBytecode() = %#x", got)
	}
}
