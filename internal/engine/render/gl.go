package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sprite3d/internal/engine/camera"
	"github.com/Faultbox/sprite3d/internal/engine/lighting"
	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/internal/engine/shader"
	"github.com/Faultbox/sprite3d/internal/logger"
	"github.com/Faultbox/sprite3d/pkg/math"
)

const vertexSize = 8 * 4 // position(3) + normal(3) + texcoord(2), float32

// glMesh is an uploaded vertex/index buffer set.
type glMesh struct {
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	indexed bool
}

// GL is the OpenGL implementation of Context.
// IMPORTANT: create it after the OpenGL context exists, and use it only from
// the thread that owns that context.
type GL struct {
	program uint32

	locMVP        int32
	locModel      int32
	locTexture    int32
	locLightCount int32
	locLightDir   int32
	locLightDiff  int32
	locLightSpec  int32
	locAmbient    int32
	locDiffuse    int32
	locEmissive   int32
	locSpecular   int32
	locSpecPower  int32
	locEyePos     int32
	locFogUse     int32
	locFogNear    int32
	locFogFar     int32
	locFogColor   int32

	cam camera.State
	env lighting.Environment

	// Currently bound state. Nil-slot setters keep these values, which is
	// what gives materials their "leave untouched" semantics.
	curDiffuse   lighting.Color
	curEmissive  lighting.Color
	curSpecular  lighting.Color
	curSpecPower float32
	curLights    []lighting.Directional
	curAmbient   lighting.Color
	curFog       *lighting.Fog

	// Clip range accumulated through ExtendClipRange this frame.
	clipNear  float32
	clipFar   float32
	clipValid bool

	// Lazily uploaded geometry, keyed by the drawable's identity.
	meshBufs map[*model.SubMesh]*glMesh
	triBufs  map[*model.TriangleBuffer]*glMesh

	// 1x1 white fallback for untextured drawables.
	fallbackTex uint32
}

var _ Context = (*GL)(nil)

// NewGL creates the OpenGL render context. The GL library must already be
// initialized (gl.Init).
func NewGL() (*GL, error) {
	c := &GL{
		curDiffuse:   lighting.White,
		curSpecPower: 8,
		meshBufs:     map[*model.SubMesh]*glMesh{},
		triBufs:      map[*model.TriangleBuffer]*glMesh{},
	}

	program, err := shader.CompileProgram(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	c.program = program

	c.locMVP = shader.GetUniform(program, "uMVP")
	c.locModel = shader.GetUniform(program, "uModel")
	c.locTexture = shader.GetUniform(program, "uTexture")
	c.locLightCount = shader.GetUniform(program, "uLightCount")
	c.locLightDir = shader.GetUniform(program, "uLightDir")
	c.locLightDiff = shader.GetUniform(program, "uLightDiffuse")
	c.locLightSpec = shader.GetUniform(program, "uLightSpecular")
	c.locAmbient = shader.GetUniform(program, "uAmbient")
	c.locDiffuse = shader.GetUniform(program, "uDiffuse")
	c.locEmissive = shader.GetUniform(program, "uEmissive")
	c.locSpecular = shader.GetUniform(program, "uSpecular")
	c.locSpecPower = shader.GetUniform(program, "uSpecPower")
	c.locEyePos = shader.GetUniform(program, "uEyePos")
	c.locFogUse = shader.GetUniform(program, "uFogUse")
	c.locFogNear = shader.GetUniform(program, "uFogNear")
	c.locFogFar = shader.GetUniform(program, "uFogFar")
	c.locFogColor = shader.GetUniform(program, "uFogColor")

	c.createFallbackTexture()

	return c, nil
}

func (c *GL) createFallbackTexture() {
	gl.GenTextures(1, &c.fallbackTex)
	gl.BindTexture(gl.TEXTURE_2D, c.fallbackTex)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
}

// BeginFrame installs the camera snapshot and resets the clip accumulator.
func (c *GL) BeginFrame(cam camera.State) {
	c.cam = cam
	c.clipValid = false
}

// Camera returns the camera snapshot for the current frame.
func (c *GL) Camera() camera.State {
	return c.cam
}

// Environment returns the mutable light/fog environment.
func (c *GL) Environment() *lighting.Environment {
	return &c.env
}

// SetLights binds up to lighting.MaxDirectional directional lights.
func (c *GL) SetLights(lights []lighting.Directional) {
	if len(lights) > lighting.MaxDirectional {
		lights = lights[:lighting.MaxDirectional]
	}
	c.curLights = lights
}

// SetAmbient binds the ambient color. nil keeps the current value.
func (c *GL) SetAmbient(col *lighting.Color) {
	if col != nil {
		c.curAmbient = *col
	}
}

// SetFog binds linear fog. nil keeps the current fog state.
func (c *GL) SetFog(f *lighting.Fog) {
	if f != nil {
		c.curFog = f
	}
}

// SetMaterial binds material parameters; nil color slots keep whatever was
// bound before.
func (c *GL) SetMaterial(mat *model.Material) {
	if mat == nil {
		return
	}
	if mat.Diffuse != nil {
		c.curDiffuse = *mat.Diffuse
	}
	if mat.Emissive != nil {
		c.curEmissive = *mat.Emissive
	}
	if mat.Specular != nil {
		c.curSpecular = *mat.Specular
	}
	c.curSpecPower = mat.SpecularPower
}

// DrawMesh submits one sub-mesh with the given world transform.
func (c *GL) DrawMesh(sub *model.SubMesh, world math.Mat4, tex model.Texture) {
	buf := c.meshBufs[sub]
	if buf == nil {
		buf = uploadMesh(sub.Vertices, sub.Indices)
		c.meshBufs[sub] = buf
	}
	if tex == 0 {
		tex = sub.Texture
	}
	c.draw(buf, world, tex)
}

// DrawTriangles submits a raw triangle buffer with the given world transform.
func (c *GL) DrawTriangles(tri *model.TriangleBuffer, world math.Mat4, tex model.Texture) {
	buf := c.triBufs[tri]
	if buf == nil {
		buf = uploadMesh(tri.Vertices, nil)
		c.triBufs[tri] = buf
	}
	if tex == 0 {
		tex = tri.Texture
	}
	c.draw(buf, world, tex)
}

// draw binds the full uniform state and issues the draw call.
func (c *GL) draw(buf *glMesh, world math.Mat4, tex model.Texture) {
	gl.UseProgram(c.program)

	mvp := c.cam.ViewProjection().Mul(world)
	gl.UniformMatrix4fv(c.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(c.locModel, 1, false, world.Ptr())

	// Lights
	var dirs, diffs, specs [lighting.MaxDirectional * 3]float32
	for i, l := range c.curLights {
		dirs[i*3+0], dirs[i*3+1], dirs[i*3+2] = l.Direction.X, l.Direction.Y, l.Direction.Z
		diffs[i*3+0], diffs[i*3+1], diffs[i*3+2] = l.Diffuse.R, l.Diffuse.G, l.Diffuse.B
		specs[i*3+0], specs[i*3+1], specs[i*3+2] = l.Specular.R, l.Specular.G, l.Specular.B
	}
	gl.Uniform1i(c.locLightCount, int32(len(c.curLights)))
	gl.Uniform3fv(c.locLightDir, lighting.MaxDirectional, &dirs[0])
	gl.Uniform3fv(c.locLightDiff, lighting.MaxDirectional, &diffs[0])
	gl.Uniform3fv(c.locLightSpec, lighting.MaxDirectional, &specs[0])
	gl.Uniform3f(c.locAmbient, c.curAmbient.R, c.curAmbient.G, c.curAmbient.B)

	// Material
	gl.Uniform4f(c.locDiffuse, c.curDiffuse.R, c.curDiffuse.G, c.curDiffuse.B, c.curDiffuse.A)
	gl.Uniform4f(c.locEmissive, c.curEmissive.R, c.curEmissive.G, c.curEmissive.B, c.curEmissive.A)
	gl.Uniform4f(c.locSpecular, c.curSpecular.R, c.curSpecular.G, c.curSpecular.B, c.curSpecular.A)
	gl.Uniform1f(c.locSpecPower, c.curSpecPower)
	gl.Uniform3f(c.locEyePos, c.cam.Eye.X, c.cam.Eye.Y, c.cam.Eye.Z)

	// Fog
	if c.curFog != nil {
		gl.Uniform1i(c.locFogUse, 1)
		gl.Uniform1f(c.locFogNear, c.curFog.Near)
		gl.Uniform1f(c.locFogFar, c.curFog.Far)
		gl.Uniform3f(c.locFogColor, c.curFog.Color.R, c.curFog.Color.G, c.curFog.Color.B)
	} else {
		gl.Uniform1i(c.locFogUse, 0)
	}

	// Texture
	gl.ActiveTexture(gl.TEXTURE0)
	if tex != 0 {
		gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	} else {
		gl.BindTexture(gl.TEXTURE_2D, c.fallbackTex)
	}
	gl.Uniform1i(c.locTexture, 0)

	gl.BindVertexArray(buf.vao)
	if buf.indexed {
		gl.DrawElements(gl.TRIANGLES, buf.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, buf.count)
	}
	gl.BindVertexArray(0)
}

func uploadMesh(verts []model.Vertex, indices []uint32) *glMesh {
	buf := &glMesh{}

	gl.GenVertexArrays(1, &buf.vao)
	gl.GenBuffers(1, &buf.vbo)
	gl.BindVertexArray(buf.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*vertexSize, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexSize, 6*4)

	if len(indices) > 0 {
		gl.GenBuffers(1, &buf.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
		buf.count = int32(len(indices))
		buf.indexed = true
	} else {
		buf.count = int32(len(verts))
	}

	gl.BindVertexArray(0)
	return buf
}

// ExtendClipRange widens the frame clip range to include the given
// world-space sphere. The host applies the result to next frame's camera.
func (c *GL) ExtendClipRange(s math.Sphere) {
	d := c.cam.Forward().Dot(s.Center.Sub(c.cam.Eye))
	near := d - s.Radius
	far := d + s.Radius
	if near < 0.1 {
		near = 0.1
	}
	if !c.clipValid {
		c.clipNear, c.clipFar = near, far
		c.clipValid = true
		return
	}
	if near < c.clipNear {
		c.clipNear = near
	}
	if far > c.clipFar {
		c.clipFar = far
	}
}

// ClipRange returns the accumulated clip range for this frame, or ok=false
// when no node reported bounds.
func (c *GL) ClipRange() (near, far float32, ok bool) {
	return c.clipNear, c.clipFar, c.clipValid
}

// ReleaseMaterial releases a node-created material. GL materials hold no GPU
// resources, so this only logs at debug level for leak tracing.
func (c *GL) ReleaseMaterial(mat *model.Material) {
	if mat == nil {
		return
	}
	logger.Debug("material released", zap.Float32("specPower", mat.SpecularPower))
}

// ResetDepthState restores the default enabled depth test state.
func (c *GL) ResetDepthState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

// Destroy releases the shader program and all uploaded geometry.
func (c *GL) Destroy() {
	for _, buf := range c.meshBufs {
		destroyMesh(buf)
	}
	for _, buf := range c.triBufs {
		destroyMesh(buf)
	}
	c.meshBufs = map[*model.SubMesh]*glMesh{}
	c.triBufs = map[*model.TriangleBuffer]*glMesh{}

	if c.fallbackTex != 0 {
		gl.DeleteTextures(1, &c.fallbackTex)
		c.fallbackTex = 0
	}
	if c.program != 0 {
		gl.DeleteProgram(c.program)
		c.program = 0
	}
}

func destroyMesh(buf *glMesh) {
	if buf.vao != 0 {
		gl.DeleteVertexArrays(1, &buf.vao)
	}
	if buf.vbo != 0 {
		gl.DeleteBuffers(1, &buf.vbo)
	}
	if buf.ebo != 0 {
		gl.DeleteBuffers(1, &buf.ebo)
	}
}
