package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionToggleOverlay
	ActionToggleWireframe
	ActionModShift
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and mouse buttons to actions and tracks their edges
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	prevState    [ActionCount]bool

	// Reset by PostUpdate at the end of each frame
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates an InputManager with the default bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyEscape, ActionQuit)
	im.BindKey(glfw.KeyV, ActionToggleOverlay)
	im.BindKey(glfw.KeyF3, ActionToggleOverlay)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.KeyLeftShift, ActionModShift)
	im.BindKey(glfw.KeyRightShift, ActionModShift)

	return im
}

// BindKey adds action to key. A key may drive several actions and an action
// may be bound to several keys.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if !action.valid() {
		return
	}
	im.mu.Lock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
	im.mu.Unlock()
}

// UnbindKey removes every action bound to key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	delete(im.keyToActions, key)
	im.mu.Unlock()
}

// BindMouseButton adds action to a mouse button
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if !action.valid() {
		return
	}
	im.mu.Lock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
	im.mu.Unlock()
}

// HandleKeyEvent records a key event; key repeat counts as held
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent records a mouse button event
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.mouseButtonToActions[button], action == glfw.Press)
}

// apply updates state and edge flags; callers hold mu
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// Attach installs key and mouse button callbacks on window
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
}

// PostUpdate clears edge flags; call it once at the end of every frame
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.prevState = im.currentState
	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
}

// IsActive reports whether the action is held
func (im *InputManager) IsActive(action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed reports whether the action went down this frame
func (im *InputManager) JustPressed(action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased reports whether the action went up this frame
func (im *InputManager) JustReleased(action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}

func (a Action) valid() bool {
	return a >= 0 && a < ActionCount
}
