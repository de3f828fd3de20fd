package graphics

import (
	"github.com/go-gl/mathgl/mgl32"

	"starship/internal/scene"
)

// Viewport tracks the framebuffer size and derives the scene camera's matrices
type Viewport struct {
	Width  int
	Height int
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Resize updates the framebuffer size
func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = width, height
}

// AspectRatio returns width/height, or 1 for a minimized window
func (v *Viewport) AspectRatio() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Matrices returns the view and projection for cam at the current size
func (v *Viewport) Matrices(cam scene.Camera) (view, proj mgl32.Mat4) {
	return cam.View(), cam.Projection(v.AspectRatio())
}

// Ortho returns a pixel-space projection with the origin at the top left
func (v *Viewport) Ortho() mgl32.Mat4 {
	return mgl32.Ortho(0, float32(v.Width), float32(v.Height), 0, 0, 1)
}
