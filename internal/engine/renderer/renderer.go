// Package renderer draws the orbit viewer's scene: a ground grid and an axis
// marker at the orbit origin.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/engine/shader"
	"github.com/Faultbox/orbitcam/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	GridHalfExtent int     // Grid lines on each side of the world origin
	GridStep       float32 // World units between grid lines
	MarkerSize     float32 // Axis marker arm length
}

// DefaultConfig returns a 20x20 unit grid with a one unit marker.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:          width,
		Height:         height,
		GridHalfExtent: 10,
		GridStep:       1,
		MarkerSize:     1,
	}
}

// mesh is a VAO of colored line vertices.
type mesh struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	grid    mesh
	marker  mesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Compile(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.grid = uploadLines(GridVertices(cfg.GridHalfExtent, cfg.GridStep))
	r.marker = uploadLines(AxisVertices(cfg.MarkerSize))

	r.log.Debug("scene uploaded",
		zap.Int32("grid_vertices", r.grid.count),
		zap.Int32("marker_vertices", r.marker.count),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range []*mesh{&r.grid, &r.marker} {
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders one frame. viewProj is the camera's projection * view and
// origin is the point the camera orbits.
func (r *Renderer) Draw(viewProj mgl32.Mat4, origin mgl32.Vec3) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()

	r.drawLines(r.grid, viewProj)
	r.drawLines(r.marker, MarkerMVP(viewProj, origin))

	gl.BindVertexArray(0)
}

func (r *Renderer) drawLines(m mesh, mvp mgl32.Mat4) {
	r.program.SetMat4("uMVP", mvp)
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.LINES, 0, m.count)
}

// MarkerMVP places the axis marker at origin.
func MarkerMVP(viewProj mgl32.Mat4, origin mgl32.Vec3) mgl32.Mat4 {
	return viewProj.Mul4(mgl32.Translate3D(origin.X(), origin.Y(), origin.Z()))
}

// floatsPerVertex is position (x, y, z) + color (r, g, b).
const floatsPerVertex = 6

// GridVertices returns line vertices for a square grid on the XZ plane.
func GridVertices(halfExtent int, step float32) []float32 {
	if halfExtent <= 0 || step <= 0 {
		return nil
	}
	const c = 0.3
	extent := float32(halfExtent) * step

	vertices := make([]float32, 0, (2*halfExtent+1)*4*floatsPerVertex)
	for i := -halfExtent; i <= halfExtent; i++ {
		p := float32(i) * step
		vertices = append(vertices,
			p, 0, -extent, c, c, c,
			p, 0, extent, c, c, c,
			-extent, 0, p, c, c, c,
			extent, 0, p, c, c, c,
		)
	}
	return vertices
}

// AxisVertices returns three colored arms: +X red, +Y green, +Z blue.
func AxisVertices(size float32) []float32 {
	return []float32{
		0, 0, 0, 1, 0, 0,
		size, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0,
		0, size, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1,
		0, 0, size, 0, 0, 1,
	}
}

func uploadLines(vertices []float32) mesh {
	var m mesh
	m.count = int32(len(vertices) / floatsPerVertex)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vertexColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`
