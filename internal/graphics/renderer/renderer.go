package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"starship/internal/graphics"
	"starship/internal/profiling"
	"starship/internal/scene"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	viewport    *graphics.Viewport
}

// NewRenderer configures GL state and initializes the renderables in order
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	gl.Viewport(0, 0, int32(width), int32(height))

	r := &Renderer{
		renderables: rs,
		viewport:    graphics.NewViewport(width, height),
	}

	for i, rd := range rs {
		if err := rd.Init(); err != nil {
			// Release the ones that already succeeded
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
		rd.SetViewport(width, height)
	}
	return r, nil
}

// Render clears to the scene background and draws every renderable
func (r *Renderer) Render(root *scene.Root, fps int, dt float64) {
	defer profiling.Track("render")()

	s := root.Scene
	gl.ClearColor(s.Background.X(), s.Background.Y(), s.Background.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view, proj := r.viewport.Matrices(s.Camera)
	rotation, mounted := root.ShipRotation()

	ctx := RenderContext{
		Scene:    s,
		Status:   root.Status(),
		Rotation: rotation,
		Mounted:  mounted,
		FPS:      fps,
		DT:       dt,
		View:     view,
		Proj:     proj,
		Viewport: r.viewport,
	}

	for _, rd := range r.renderables {
		rd.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// UpdateViewport resizes the GL viewport and notifies every renderable
func (r *Renderer) UpdateViewport(width, height int) {
	r.viewport.Resize(width, height)
	gl.Viewport(0, 0, int32(width), int32(height))
	for _, rd := range r.renderables {
		rd.SetViewport(width, height)
	}
}
