package config

import (
	"sync"
)

// RenderSettings holds settings that can change while the app runs
type RenderSettings struct {
	mu        sync.RWMutex
	fpsLimit  int // 0 means unlimited (vsync only)
	wireframe bool
	overlay   bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit: 120,
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values disable the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}

// GetWireframeMode reports whether meshes are drawn as lines
func GetWireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframeMode flips wireframe drawing
func ToggleWireframeMode() {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
}

// GetOverlayVisible reports whether the debug overlay is drawn
func GetOverlayVisible() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.overlay
}

// SetOverlayVisible shows or hides the debug overlay
func SetOverlayVisible(visible bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.overlay = visible
}

// ToggleOverlay flips the debug overlay
func ToggleOverlay() {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.overlay = !globalRenderSettings.overlay
}
