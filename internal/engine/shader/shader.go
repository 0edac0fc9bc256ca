// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cassini/internal/engine/gpu"
)

// Program is a linked GL shader program.
type Program uint32

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Failures are returned as *gpu.InitError carrying the driver log.
func CompileProgram(vertexSrc, fragmentSrc string) (Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, gpu.StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, gpu.StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, &gpu.InitError{Stage: gpu.StageLink, Log: log}
	}

	return Program(program), nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage gpu.Stage) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, &gpu.InitError{Stage: stage, Log: log}
	}

	return shader, nil
}

// infoLog reads a NUL-terminated driver log of length n.
func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "(no log)"
	}
	buf := make([]uint8, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n ")
}

// Use makes p the current program.
func (p Program) Use() {
	gl.UseProgram(uint32(p))
}

// Uniform returns the uniform location for the given name, or -1.
func (p Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// Attrib returns the vertex attribute location for the given name, or -1.
func (p Program) Attrib(name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

// Delete releases the program.
func (p Program) Delete() {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}
