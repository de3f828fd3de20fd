package main

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"starship/internal/asset"
	"starship/internal/config"
	"starship/internal/frame"
	renderer "starship/internal/graphics/renderer"
	"starship/internal/input"
	"starship/internal/profiling"
	"starship/internal/scene"
)

// FrameLoop drives polling, scene updates and drawing once per display frame
type FrameLoop struct {
	window       *glfw.Window
	renderer     *renderer.Renderer
	root         *scene.Root
	loader       *asset.Loader
	inputManager *input.InputManager

	clock   *frame.Clock
	limiter *frame.Limiter

	lastShip scene.SuspenseState
}

// NewFrameLoop creates a frame loop over an already composed scene
func NewFrameLoop(window *glfw.Window, r *renderer.Renderer, root *scene.Root, loader *asset.Loader, im *input.InputManager) *FrameLoop {
	return &FrameLoop{
		window:       window,
		renderer:     r,
		root:         root,
		loader:       loader,
		inputManager: im,
		clock:        frame.NewClock(),
		limiter:      frame.NewLimiter(),
		lastShip:     scene.SuspensePending,
	}
}

// Run loops until the window is asked to close
func (fl *FrameLoop) Run() {
	for !fl.window.ShouldClose() {
		fl.tick()
	}
	slog.Info("starship closing", "frames", fl.root.Scene.Frame())
}

func (fl *FrameLoop) tick() {
	profiling.ResetFrame()
	dt, rolled := fl.clock.Tick()

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	fl.loader.Poll()
	func() { defer profiling.Track("scene.Update")(); fl.root.Update(dt) }()
	fl.reportShipState()

	fl.handleInputActions()

	fl.renderer.Render(fl.root, fl.clock.FPS(), dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); fl.window.SwapBuffers() }()

	fl.inputManager.PostUpdate()

	if rolled {
		slog.Info("frame stats", "fps", fl.clock.FPS(), "pending_assets", fl.loader.Pending(), "top", profiling.TopN(3))
	}

	fl.limiter.Wait()
}

// reportShipState logs the ship boundary's transitions once each
func (fl *FrameLoop) reportShipState() {
	st := fl.root.Status()
	if st.Ship == fl.lastShip {
		return
	}
	fl.lastShip = st.Ship

	switch st.Ship {
	case scene.SuspenseMounted:
		slog.Info("ship mounted", "frame", fl.root.Scene.Frame())
	case scene.SuspenseFailed:
		slog.Error("ship failed to load", "error", st.ShipErr)
	}
}

func (fl *FrameLoop) handleInputActions() {
	if fl.inputManager.JustPressed(input.ActionQuit) {
		fl.window.SetShouldClose(true)
	}
	if fl.inputManager.JustPressed(input.ActionToggleWireframe) {
		config.ToggleWireframeMode()
		slog.Debug("wireframe toggled", "on", config.GetWireframeMode())
	}
	if fl.inputManager.JustPressed(input.ActionToggleOverlay) {
		config.ToggleOverlay()
	}
}
