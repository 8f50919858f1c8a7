package opengl

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// glSource returns source as a NUL-terminated string for gl.Strs.
func glSource(source []byte) string {
	s := string(source)
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return s
}

// infoLog trims the NUL padding and trailing whitespace of a GL info log.
func infoLog(log string) string {
	return strings.TrimRight(log, "\x00\r\n\t ")
}

func compileShader(stage string, shaderType uint32, source []byte) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(glSource(source))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, errors.Errorf("compiling %s shader: %s", stage, infoLog(log))
	}
	return shader, nil
}

func linkProgram(vertexSource, fragmentSource []byte) (uint32, error) {
	vertexShader, err := compileShader("vertex", gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader("fragment", gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, errors.Errorf("linking program: %s", infoLog(log))
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	return program, nil
}
