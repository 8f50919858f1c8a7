// Package render binds the platform, timing and input layers to a graphics
// backend and drives the per-frame loop.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vkngwrapper/triangle/internal/platform"
)

// Frame is everything a backend needs to submit one draw.
type Frame struct {
	Width, Height int
	Transform     mgl32.Mat4
}

// Backend is a graphics API implementation with a uniform lifecycle.
//
// Init builds the device context and every presentation and pipeline
// resource against window. DrawFrame submits exactly one draw and hands the
// frame back to the platform. Destroy releases whatever Init managed to
// create, in reverse order, and must run before the window is released.
type Backend interface {
	Name() string
	// API is the graphics API the window has to be created for.
	API() platform.API
	// ShaderPaths names the vertex and fragment stage files the backend
	// consumes, relative to the shader directory.
	ShaderPaths() (vertex, fragment string)
	Init(window platform.Window, shaders ShaderSources, mesh Mesh) error
	DrawFrame(frame Frame) error
	Destroy()
}
