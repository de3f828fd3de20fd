package meshes

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"starship/internal/config"
	"starship/internal/geom"
	"starship/internal/graphics"
	renderer "starship/internal/graphics/renderer"
	"starship/internal/profiling"
	"starship/internal/scene"
)

// Meshes draws every visible object in the scene table
type Meshes struct {
	basic    *graphics.Shader
	standard *graphics.Shader
	textures *graphics.TextureCache
	buffers  map[*geom.Geometry]*graphics.MeshBuffer
	used     map[*geom.Geometry]bool
}

// NewMeshes creates a new mesh renderable
func NewMeshes() *Meshes {
	return &Meshes{
		buffers: make(map[*geom.Geometry]*graphics.MeshBuffer),
		used:    make(map[*geom.Geometry]bool),
	}
}

// Init compiles the basic and standard material programs
func (m *Meshes) Init() error {
	var err error
	m.basic, err = graphics.NewShader(graphics.Shaders, graphics.MeshVertShader, graphics.BasicFragShader)
	if err != nil {
		return err
	}
	m.standard, err = graphics.NewShader(graphics.Shaders, graphics.MeshVertShader, graphics.StandardFragShader)
	if err != nil {
		m.basic.Delete()
		return err
	}
	m.textures = graphics.NewTextureCache()
	return nil
}

// Render draws the scene's objects, then frees buffers of removed geometry
func (m *Meshes) Render(ctx renderer.RenderContext) {
	defer profiling.Track("render.meshes")()

	if config.GetWireframeMode() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	clear(m.used)
	for _, obj := range ctx.Scene.Objects() {
		if !obj.Visible || obj.Geometry == nil {
			continue
		}
		m.draw(ctx, obj)
	}
	m.prune()

	gl.Disable(gl.CULL_FACE)
}

func (m *Meshes) draw(ctx renderer.RenderContext, obj *scene.Object) {
	mat := obj.Material
	shader := m.basic
	if mat.Kind == scene.MaterialStandard {
		shader = m.standard
	}
	shader.Use()

	model := obj.Transform.Matrix()
	normal := model.Mat3().Inv().Transpose()
	shader.SetMatrix4("model", &model[0])
	shader.SetMatrix4("view", &ctx.View[0])
	shader.SetMatrix4("proj", &ctx.Proj[0])
	shader.SetMatrix3("normalMatrix", &normal[0])
	shader.SetVector3("baseColor", mat.Color.X(), mat.Color.Y(), mat.Color.Z())

	repeat := mgl32.Vec2{1, 1}
	useMap := false
	if mat.Map != nil {
		if tex, ok := m.textures.Get(mat.Map); ok {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex)
			shader.SetInt("map", 0)
			repeat = mat.Map.Sampler.Repeat
			useMap = true
		}
	}
	shader.SetBool("useMap", useMap)
	shader.SetVector2("uvRepeat", repeat.X(), repeat.Y())

	if mat.Kind == scene.MaterialStandard {
		setLight(shader, ctx.Scene.Light)
	}

	applySide(mat.Side)

	mb, ok := m.buffers[obj.Geometry]
	if !ok {
		mb = graphics.NewMeshBuffer(obj.Geometry)
		m.buffers[obj.Geometry] = mb
	}
	m.used[obj.Geometry] = true
	mb.Draw()

	if useMap {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

func setLight(shader *graphics.Shader, l scene.SpotLight) {
	outer, inner := l.Cones()
	dir := l.Direction()
	shader.SetVector3("lightPos", l.Position.X(), l.Position.Y(), l.Position.Z())
	shader.SetVector3("lightDir", dir.X(), dir.Y(), dir.Z())
	shader.SetVector3("lightColor", l.Color.X(), l.Color.Y(), l.Color.Z())
	shader.SetFloat("lightIntensity", l.Intensity)
	shader.SetFloat("coneCos", outer)
	shader.SetFloat("penumbraCos", inner)
}

// applySide culls the faces a material does not show. A back-sided material
// is seen from inside, so its front faces are the ones dropped.
func applySide(side scene.Side) {
	switch side {
	case scene.SideBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case scene.SideDouble:
		gl.Disable(gl.CULL_FACE)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

func (m *Meshes) prune() {
	for g, mb := range m.buffers {
		if !m.used[g] {
			mb.Delete()
			delete(m.buffers, g)
		}
	}
}

// SetViewport is a no-op; meshes use the context's projection
func (m *Meshes) SetViewport(width, height int) {}

// Dispose releases buffers, textures and shaders
func (m *Meshes) Dispose() {
	for g, mb := range m.buffers {
		mb.Delete()
		delete(m.buffers, g)
	}
	if m.textures != nil {
		m.textures.Delete()
	}
	if m.basic != nil {
		m.basic.Delete()
	}
	if m.standard != nil {
		m.standard.Delete()
	}
}
