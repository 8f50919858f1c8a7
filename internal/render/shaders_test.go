package render

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
)

func TestLoadShaders(t *testing.T) {
	fsys := fstest.MapFS{
		"triangle.vert": {Data: []byte("#version 410 core\nvoid main() {}\n")},
		"triangle.frag": {Data: []byte("#version 410 core\nout vec4 f;\nvoid main() {}\n")},
	}

	src, err := LoadShaders(fsys, "triangle.vert", "triangle.frag")
	if err != nil {
		t.Fatalf("LoadShaders() error = %v", err)
	}
	if string(src.Vertex) != string(fsys["triangle.vert"].Data) {
		t.Errorf("vertex source = %q", src.Vertex)
	}
	if string(src.Fragment) != string(fsys["triangle.frag"].Data) {
		t.Errorf("fragment source = %q", src.Fragment)
	}
}

func TestLoadShadersMissingStage(t *testing.T) {
	fsys := fstest.MapFS{
		"triangle.vert": {Data: []byte("void main() {}")},
	}

	_, err := LoadShaders(fsys, "triangle.vert", "triangle.frag")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("LoadShaders() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadShadersEmptyStage(t *testing.T) {
	fsys := fstest.MapFS{
		"triangle.vert": {Data: []byte("void main() {}")},
		"triangle.frag": {Data: nil},
	}

	if _, err := LoadShaders(fsys, "triangle.vert", "triangle.frag"); err == nil {
		t.Fatal("LoadShaders() accepted an empty fragment shader")
	}
}

func TestLoadShadersMissingSPIRV(t *testing.T) {
	fsys := fstest.MapFS{
		"triangle.vk.vert.spv": {Data: []byte{0x03, 0x02, 0x23, 0x07}},
	}

	_, err := LoadShaders(fsys, "triangle.vk.vert.spv", "triangle.vk.frag.spv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("LoadShaders() error = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "go generate ./shaders") {
		t.Errorf("error %q does not say how to compile the shaders", err)
	}
	if hints := errors.GetAllHints(err); len(hints) != 1 || hints[0] != GenerateHint {
		t.Errorf("hints = %q, want [%q]", hints, GenerateHint)
	}
}

func TestLoadShadersMissingSourceHasNoHint(t *testing.T) {
	_, err := LoadShaders(fstest.MapFS{}, "triangle.gl.vert", "triangle.gl.frag")
	if err == nil {
		t.Fatal("LoadShaders() succeeded on an empty filesystem")
	}
	if hints := errors.GetAllHints(err); len(hints) != 0 {
		t.Errorf("hints = %q, want none", hints)
	}
}
