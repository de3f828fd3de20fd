package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"starship/internal/asset"
	"starship/internal/config"
	"starship/internal/graphics/renderables/meshes"
	"starship/internal/graphics/renderables/overlay"
	renderer "starship/internal/graphics/renderer"
	"starship/internal/input"
	"starship/internal/scene"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("starship exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}
	setupLogging(settings.LogLevel)
	settings.Apply()

	slog.Info("starship starting",
		"model", settings.Assets.ShipModel,
		"node", settings.Assets.ShipNode,
		"texture", settings.Assets.ShipTexture,
		"background", settings.Assets.BackgroundImage,
	)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(settings)
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	slog.Info("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	loader := asset.NewLoader(os.DirFS(settings.Assets.Root))
	defer loader.Close()

	root := scene.Compose(loader, settings.SceneOptions())
	defer root.Dispose()

	fbW, fbH := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(fbW, fbH, meshes.NewMeshes(), overlay.NewOverlay())
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Dispose()

	im := input.NewInputManager()
	setupInputHandlers(window, r, im)

	NewFrameLoop(window, r, root, loader, im).Run()
	return nil
}
