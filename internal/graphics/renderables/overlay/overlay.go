package overlay

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"starship/internal/config"
	"starship/internal/graphics"
	renderer "starship/internal/graphics/renderer"
	"starship/internal/profiling"
)

const (
	fontPixels = 18
	margin     = 12
	lineStep   = 22
	panelWidth = 420
)

// Overlay draws the debug panel: frame rate, ship state and frame timings
type Overlay struct {
	font   *graphics.FontRenderer
	panel  *graphics.Shader
	vao    uint32
	vbo    uint32

	viewport *graphics.Viewport
}

// NewOverlay creates a new overlay renderable
func NewOverlay() *Overlay {
	return &Overlay{viewport: graphics.NewViewport(0, 0)}
}

// Init bakes the font atlas and sets up the panel quad
func (o *Overlay) Init() error {
	atlas, err := graphics.BuildFontAtlas(fontPixels)
	if err != nil {
		return err
	}
	o.font, err = graphics.NewFontRenderer(atlas)
	if err != nil {
		atlas.Delete()
		return err
	}
	o.panel, err = graphics.NewShader(graphics.Shaders, graphics.PanelVertShader, graphics.PanelFragShader)
	if err != nil {
		o.font.Delete()
		return err
	}

	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

// Render draws the panel when the overlay is toggled on
func (o *Overlay) Render(ctx renderer.RenderContext) {
	if !config.GetOverlayVisible() {
		return
	}
	defer profiling.Track("render.overlay")()

	lines := Lines(ctx)
	h := float32(len(lines)*lineStep + margin)
	o.drawFilledRect(0, 0, panelWidth, h, mgl32.Vec3{0, 0, 0}, 0.55)
	o.font.RenderLines(lines, margin, margin+fontPixels, lineStep, 1, mgl32.Vec3{1, 1, 1})
}

// Lines formats the overlay text for one frame
func Lines(ctx renderer.RenderContext) []string {
	lines := []string{
		fmt.Sprintf("FPS: %d (%s)", ctx.FPS, profiling.FormatMs(time.Duration(ctx.DT*float64(time.Second)))),
		fmt.Sprintf("Frame: %d  Objects: %d", ctx.Scene.Frame(), ctx.Scene.Len()),
	}

	ship := "Ship: " + ctx.Status.Ship.String()
	if ctx.Status.ShipErr != nil {
		ship += " (" + ctx.Status.ShipErr.Error() + ")"
	}
	lines = append(lines, ship)
	if ctx.Mounted {
		lines = append(lines, fmt.Sprintf("Rotation: x=%.3f y=%.3f", ctx.Rotation.X(), ctx.Rotation.Y()))
	}
	lines = append(lines, "Background: "+ctx.Status.Background.String())

	if config.GetWireframeMode() {
		lines = append(lines, "Wireframe")
	}
	if ctx.Scene.ShadowMap {
		lines = append(lines, "Shadows: requested")
	}

	if top := profiling.TopN(3); top != "" {
		lines = append(lines, "Slowest: "+top)
	}
	return lines
}

// panelQuad converts a pixel rect to two NDC triangles
func panelQuad(x, y, w, h float32, width, height int) []float32 {
	x0 := (x/float32(width))*2 - 1
	y0 := 1 - (y/float32(height))*2
	x1 := ((x+w)/float32(width))*2 - 1
	y1 := 1 - ((y+h)/float32(height))*2
	return []float32{
		x0, y0,
		x1, y0,
		x1, y1,
		x0, y0,
		x1, y1,
		x0, y1,
	}
}

func (o *Overlay) drawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	if o.viewport.Width <= 0 || o.viewport.Height <= 0 {
		return
	}
	verts := panelQuad(x, y, w, h, o.viewport.Width, o.viewport.Height)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	o.panel.Use()
	o.panel.SetVector4("uColor", color.X(), color.Y(), color.Z(), alpha)

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// SetViewport updates the pixel projection for text and panel
func (o *Overlay) SetViewport(width, height int) {
	o.viewport.Resize(width, height)
	if o.font != nil {
		o.font.SetProjection(o.viewport.Ortho())
	}
}

// Dispose cleans up OpenGL resources
func (o *Overlay) Dispose() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	if o.panel != nil {
		o.panel.Delete()
	}
	if o.font != nil {
		o.font.Delete()
	}
}

var _ renderer.Renderable = (*Overlay)(nil)
