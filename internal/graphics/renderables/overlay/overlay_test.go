package overlay

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"starship/internal/asset"
	"starship/internal/config"
	renderer "starship/internal/graphics/renderer"
	"starship/internal/profiling"
	"starship/internal/scene"
)

func contains(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestLinesPending(t *testing.T) {
	profiling.ResetFrame()
	ctx := renderer.RenderContext{
		Scene: scene.New(),
		Status: scene.RootStatus{
			Ship:       scene.SuspensePending,
			Background: scene.Status{State: asset.StateLoading},
		},
		FPS: 60,
		DT:  0.016,
	}

	lines := Lines(ctx)
	if lines[0] != "FPS: 60 (16ms)" {
		t.Errorf("Expected FPS line, got %q", lines[0])
	}
	if !contains(lines, "Ship: pending") {
		t.Errorf("Expected pending ship, got %v", lines)
	}
	if !contains(lines, "Background: loading") {
		t.Errorf("Expected loading background, got %v", lines)
	}
	if contains(lines, "Rotation") {
		t.Error("Expected no rotation line before the ship mounts")
	}
}

func TestLinesMountedAndFailed(t *testing.T) {
	profiling.ResetFrame()
	ctx := renderer.RenderContext{
		Scene:    scene.New(),
		Status:   scene.RootStatus{Ship: scene.SuspenseMounted},
		Rotation: mgl32.Vec3{0.5, 0.5, 0},
		Mounted:  true,
	}
	if !contains(Lines(ctx), "Rotation: x=0.500 y=0.500") {
		t.Errorf("Expected rotation line, got %v", Lines(ctx))
	}

	ctx.Mounted = false
	ctx.Status = scene.RootStatus{Ship: scene.SuspenseFailed, ShipErr: errors.New("boom")}
	if !contains(Lines(ctx), "Ship: failed (boom)") {
		t.Errorf("Expected failure reason, got %v", Lines(ctx))
	}
}

func TestLinesFlags(t *testing.T) {
	profiling.ResetFrame()
	s := scene.New()
	s.ShadowMap = true

	config.ToggleWireframeMode()
	defer config.ToggleWireframeMode()

	lines := Lines(renderer.RenderContext{Scene: s})
	if !contains(lines, "Wireframe") || !contains(lines, "Shadows: requested") {
		t.Errorf("Expected wireframe and shadow lines, got %v", lines)
	}
}

func TestPanelQuad(t *testing.T) {
	v := panelQuad(0, 0, 50, 25, 100, 100)
	if len(v) != 12 {
		t.Fatalf("Expected 6 vertices, got %d floats", len(v)/2)
	}
	// Top-left corner maps to NDC (-1, 1); bottom-right to (0, 0.5)
	if v[0] != -1 || v[1] != 1 || v[4] != 0 || v[5] != 0.5 {
		t.Errorf("Unexpected quad %v", v)
	}
}

func TestSetViewportTracksSize(t *testing.T) {
	o := NewOverlay()
	o.SetViewport(1280, 720)
	if o.viewport.Width != 1280 || o.viewport.Height != 720 {
		t.Errorf("Expected 1280x720, got %dx%d", o.viewport.Width, o.viewport.Height)
	}
}
