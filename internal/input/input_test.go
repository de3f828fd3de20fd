package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyV, glfw.Press)
	if !im.JustPressed(ActionToggleOverlay) || !im.IsActive(ActionToggleOverlay) {
		t.Fatal("Expected overlay toggle pressed")
	}

	im.PostUpdate()
	if im.JustPressed(ActionToggleOverlay) {
		t.Error("Expected edge cleared after PostUpdate")
	}

	// Repeat keeps the key held without a new edge
	im.HandleKeyEvent(glfw.KeyV, glfw.Repeat)
	if im.JustPressed(ActionToggleOverlay) {
		t.Error("Expected key repeat not to count as a new press")
	}

	im.HandleKeyEvent(glfw.KeyV, glfw.Release)
	if !im.JustReleased(ActionToggleOverlay) || im.IsActive(ActionToggleOverlay) {
		t.Error("Expected overlay toggle released")
	}
}

func TestMultipleKeysForOneAction(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyF3, glfw.Press)
	if !im.JustPressed(ActionToggleOverlay) {
		t.Error("Expected F3 to toggle the overlay too")
	}
}

func TestUnbindKey(t *testing.T) {
	im := NewInputManager()
	im.UnbindKey(glfw.KeyEscape)
	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if im.IsActive(ActionQuit) {
		t.Error("Expected unbound key to be ignored")
	}
}

func TestMouseButtonBinding(t *testing.T) {
	im := NewInputManager()
	im.BindMouseButton(glfw.MouseButtonMiddle, ActionToggleWireframe)
	im.HandleMouseButtonEvent(glfw.MouseButtonMiddle, glfw.Press)
	if !im.JustPressed(ActionToggleWireframe) {
		t.Error("Expected mouse binding to drive the action")
	}
}

func TestInvalidAction(t *testing.T) {
	im := NewInputManager()
	im.BindKey(glfw.KeyA, ActionCount)
	im.HandleKeyEvent(glfw.KeyA, glfw.Press)
	if im.IsActive(ActionCount) || im.JustPressed(Action(-1)) {
		t.Error("Expected out-of-range actions to be rejected")
	}
}
