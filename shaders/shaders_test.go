package shaders

import (
	"bytes"
	"os"
	"testing"

	"github.com/vkngwrapper/triangle/internal/opengl"
	"github.com/vkngwrapper/triangle/internal/render"
)

func TestOpenGLSourcesLoad(t *testing.T) {
	vert, frag := opengl.NewBackend().ShaderPaths()
	sources, err := render.LoadShaders(os.DirFS("."), vert, frag)
	if err != nil {
		t.Fatalf("LoadShaders() error = %v", err)
	}

	if !bytes.Contains(sources.Vertex, []byte("uniform mat4 MVP;")) {
		t.Error("vertex stage does not declare the MVP uniform")
	}
	if !bytes.Contains(sources.Fragment, []byte("out vec4 fragment;")) {
		t.Error("fragment stage has no color output")
	}
}

func TestVulkanSourcesPresent(t *testing.T) {
	for _, name := range []string{"triangle.vk.vert", "triangle.vk.frag"} {
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("#version 450")) {
			t.Errorf("%s is not a GLSL 4.50 source", name)
		}
	}
}
