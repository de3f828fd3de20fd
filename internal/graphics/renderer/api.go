package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"starship/internal/graphics"
	"starship/internal/scene"
)

// RenderContext provides shared per-frame state to all renderables
type RenderContext struct {
	Scene    *scene.Scene
	Status   scene.RootStatus
	Rotation mgl32.Vec3
	Mounted  bool
	FPS      int
	DT       float64
	View     mgl32.Mat4
	Proj     mgl32.Mat4
	Viewport *graphics.Viewport
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
