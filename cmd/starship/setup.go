package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"

	"starship/internal/config"
	renderer "starship/internal/graphics/renderer"
	"starship/internal/input"
)

func setupLogging(levelName string) {
	// The level was validated with the rest of the settings
	level, _ := config.ParseLevel(levelName)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func setupWindow(settings config.Settings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	monitorW, monitorH := 1280, 720
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			monitorW, monitorH = mode.Width, mode.Height
		}
	}
	width, height := settings.WindowSize(monitorW, monitorH)

	window, err := glfw.CreateWindow(width, height, settings.Window.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if settings.Render.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	slog.Debug("window created", "width", width, "height", height, "vsync", settings.Render.VSync)
	return window, nil
}

func setupInputHandlers(window *glfw.Window, r *renderer.Renderer, im *input.InputManager) {
	im.Attach(window)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})
}
