// Package opengl draws the triangle through an OpenGL 4.1 core context.
package opengl

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/vkngwrapper/triangle/internal/logging"
	"github.com/vkngwrapper/triangle/internal/platform"
	"github.com/vkngwrapper/triangle/internal/render"
)

// Shader stage files consumed by the OpenGL backend, relative to the shader
// directory.
const (
	VertexShaderPath   = "triangle.gl.vert"
	FragmentShaderPath = "triangle.gl.frag"
)

const transformUniform = "MVP\x00"

// Backend renders with the context current on the window it was
// initialized against.
type Backend struct {
	window platform.Window

	program    uint32
	mvp        int32
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

var _ render.Backend = (*Backend)(nil)

func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "opengl" }

func (b *Backend) API() platform.API { return platform.APIOpenGL }

func (b *Backend) ShaderPaths() (vertex, fragment string) {
	return VertexShaderPath, FragmentShaderPath
}

func (b *Backend) Init(window platform.Window, shaders render.ShaderSources, mesh render.Mesh) error {
	if b.window != nil {
		return errors.AssertionFailedf("opengl backend initialized twice")
	}

	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "loading opengl")
	}
	logging.Logger().Info("opengl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	program, err := linkProgram(shaders.Vertex, shaders.Fragment)
	if err != nil {
		return err
	}
	b.program = program
	b.window = window

	b.mvp = gl.GetUniformLocation(b.program, gl.Str(transformUniform))
	if b.mvp < 0 {
		b.Destroy()
		return errors.Errorf("program has no %s uniform", transformUniform[:len(transformUniform)-1])
	}

	b.createBuffers(mesh)
	return nil
}

func (b *Backend) createBuffers(mesh render.Mesh) {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*render.VertexStride, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	b.indexCount = int32(len(mesh.Indices))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(render.VertexStride), gl.PtrOffset(render.PositionOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, int32(render.VertexStride), gl.PtrOffset(render.ColorOffset))

	gl.BindVertexArray(0)
}

// DrawFrame clears, draws the mesh with frame's transform and swaps the
// window's buffers.
func (b *Backend) DrawFrame(frame render.Frame) error {
	if b.window == nil {
		return errors.AssertionFailedf("opengl backend is not initialized")
	}

	gl.Viewport(0, 0, int32(frame.Width), int32(frame.Height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.mvp, 1, false, &frame.Transform[0])
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("drawing frame: gl error %#x", code)
	}

	b.window.SwapBuffers()
	return nil
}

// Destroy deletes the buffers and program. The context must still be
// current.
func (b *Backend) Destroy() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
	b.window = nil
}
