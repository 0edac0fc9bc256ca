// Package renderer uploads the surface mesh and draws it with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cassini/internal/engine/gpu"
	"github.com/Faultbox/cassini/internal/engine/mesh"
	"github.com/Faultbox/cassini/internal/engine/shader"
	"github.com/Faultbox/cassini/internal/engine/shader/shaders"
	"github.com/Faultbox/cassini/internal/engine/transform"
	"github.com/Faultbox/cassini/internal/logger"
)

// Shader interface names.
const (
	attribVertex   = "vertex"
	attribNormal   = "normal"
	uniformMVP     = "ModelViewProjectionMatrix"
	uniformNormal  = "normalMat"
	uniformColor   = "color"
	bytesPerFloat  = 4
	floatsPerCoord = 3
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer owns the surface shader program and the GPU copy of the mesh.
type Renderer struct {
	config Config

	program shader.Program

	// Attribute and uniform locations
	locVertex    uint32
	locNormal    uint32
	locMVP       int32
	locNormalMat int32
	locColor     int32

	// Mesh buffers
	vao       uint32
	vertexVBO uint32
	normalVBO uint32
	count     int32
}

// New initializes OpenGL, builds the surface program and resolves its locations.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, &gpu.InitError{Stage: gpu.StageContext, Err: err}
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	program, err := shader.CompileProgram(shaders.SurfaceVertexShader, shaders.SurfaceFragmentShader)
	if err != nil {
		return nil, err
	}
	r.program = program

	vertexLoc := program.Attrib(attribVertex)
	normalLoc := program.Attrib(attribNormal)
	if vertexLoc < 0 || normalLoc < 0 {
		program.Delete()
		return nil, &gpu.InitError{
			Stage: gpu.StageLink,
			Log:   fmt.Sprintf("attributes %q=%d %q=%d not active", attribVertex, vertexLoc, attribNormal, normalLoc),
		}
	}
	r.locVertex = uint32(vertexLoc)
	r.locNormal = uint32(normalLoc)
	r.locMVP = program.Uniform(uniformMVP)
	r.locNormalMat = program.Uniform(uniformNormal)
	r.locColor = program.Uniform(uniformColor)

	r.Resize(cfg.Width, cfg.Height)

	logger.Debug("surface program ready",
		zap.Uint32("program", uint32(program)),
		zap.Int32("mvp", r.locMVP),
		zap.Int32("normalMat", r.locNormalMat),
		zap.Int32("color", r.locColor),
	)
	return r, nil
}

// Upload copies both mesh buffers to the GPU, replacing any previous mesh.
// Call it once per mesh, not per frame.
func (r *Renderer) Upload(m *mesh.Mesh) {
	if r.vao == 0 {
		gl.GenVertexArrays(1, &r.vao)
		gl.GenBuffers(1, &r.vertexVBO)
		gl.GenBuffers(1, &r.normalVBO)
	}

	gl.BindVertexArray(r.vao)

	uploadAttrib(r.vertexVBO, r.locVertex, m.Vertices)
	uploadAttrib(r.normalVBO, r.locNormal, m.Normals)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.count = int32(m.VertexCount())

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int32("vertices", r.count),
	)
}

func uploadAttrib(vbo, loc uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*bytesPerFloat, ptr, gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, floatsPerCoord, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
}

// Draw clears the frame and issues one unindexed triangle draw.
func (r *Renderer) Draw(f transform.Frame, color [4]float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.vao == 0 || r.count == 0 {
		return
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.locMVP, 1, false, f.MVP.Ptr())
	gl.UniformMatrix4fv(r.locNormalMat, 1, false, f.Normal.Ptr())
	gl.Uniform4fv(r.locColor, 1, &color[0])

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.count)
	gl.BindVertexArray(0)
}

// Resize fits a centered square viewport into the window so the
// orthographic cube keeps its aspect ratio.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	x, y, size := squareViewport(width, height)
	gl.Viewport(x, y, size, size)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int32("viewport", size),
	)
}

func squareViewport(width, height int) (x, y, size int32) {
	size = int32(min(width, height))
	if size < 0 {
		size = 0
	}
	x = (int32(width) - size) / 2
	y = (int32(height) - size) / 2
	return x, y, size
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vertexVBO != 0 {
		gl.DeleteBuffers(1, &r.vertexVBO)
		r.vertexVBO = 0
	}
	if r.normalVBO != 0 {
		gl.DeleteBuffers(1, &r.normalVBO)
		r.normalVBO = 0
	}
	r.program.Delete()
	r.program = 0
}
