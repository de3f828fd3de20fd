package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"starship/internal/scene"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the optional settings file read from the working directory
const DefaultPath = "starship.toml"

// Settings are read once at startup
type Settings struct {
	Window   WindowSettings `toml:"window"`
	Assets   AssetSettings  `toml:"assets"`
	Render   RenderFile     `toml:"render"`
	LogLevel string         `toml:"log_level"`
}

// WindowSettings sizes the window. Zero width or height is derived from the monitor.
type WindowSettings struct {
	Title string `toml:"title"`
	Width int    `toml:"width"`
	// Height is the window height in pixels
	Height int `toml:"height"`
	// HeightFraction of the monitor height used when Height is zero
	HeightFraction float64 `toml:"height_fraction"`
}

// AssetSettings locates the bundled inputs
type AssetSettings struct {
	Root            string `toml:"root"`
	ShipModel       string `toml:"ship_model"`
	ShipTexture     string `toml:"ship_texture"`
	ShipNode        string `toml:"ship_node"`
	BackgroundImage string `toml:"background_image"`
}

// RenderFile seeds the runtime render settings
type RenderFile struct {
	FPSLimit int  `toml:"fps_limit"`
	VSync    bool `toml:"vsync"`
	Overlay  bool `toml:"overlay"`
}

// Default returns the settings used when no file is present
func Default() Settings {
	opts := scene.DefaultOptions()
	return Settings{
		Window: WindowSettings{
			Title:          "starship",
			HeightFraction: 0.95,
		},
		Assets: AssetSettings{
			Root:            ".",
			ShipModel:       opts.ShipModel,
			ShipTexture:     opts.ShipTexture,
			ShipNode:        opts.ShipNode,
			BackgroundImage: opts.BackgroundImage,
		},
		Render: RenderFile{
			FPSLimit: 120,
			VSync:    true,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no settings file, using defaults", "path", path)
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("could not read settings file: %w", err)
	}
	if err := Parse(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML into s, keeping fields the document leaves out, and validates the result
func Parse(data []byte, s *Settings) error {
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("could not decode settings: %w", err)
	}
	return s.Validate()
}

// Validate rejects settings the app cannot start with
func (s Settings) Validate() error {
	if s.Window.Width < 0 || s.Window.Height < 0 {
		return fmt.Errorf("window size %dx%d must not be negative", s.Window.Width, s.Window.Height)
	}
	if s.Window.HeightFraction <= 0 || s.Window.HeightFraction > 1 {
		return fmt.Errorf("window height_fraction %v must be in (0, 1]", s.Window.HeightFraction)
	}
	if s.Assets.ShipModel == "" || s.Assets.ShipTexture == "" || s.Assets.BackgroundImage == "" {
		return fmt.Errorf("asset paths must not be empty")
	}
	if s.Assets.ShipNode == "" {
		return fmt.Errorf("assets ship_node must name a node in %s", s.Assets.ShipModel)
	}
	if s.Render.FPSLimit < 0 {
		return fmt.Errorf("render fps_limit %d must not be negative", s.Render.FPSLimit)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// SceneOptions maps the asset settings onto the scene root's options
func (s Settings) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.ShipModel = s.Assets.ShipModel
	opts.ShipTexture = s.Assets.ShipTexture
	opts.ShipNode = s.Assets.ShipNode
	opts.BackgroundImage = s.Assets.BackgroundImage
	return opts
}

// WindowSize returns the window size for a monitor of the given video mode.
// The default fills the monitor width and 95% of its height.
func (s Settings) WindowSize(monitorW, monitorH int) (int, int) {
	w, h := s.Window.Width, s.Window.Height
	if w == 0 {
		w = monitorW
	}
	if h == 0 {
		h = int(float64(monitorH) * s.Window.HeightFraction)
	}
	return max(w, 1), max(h, 1)
}

// Apply copies the runtime part of the file into the global render settings
func (s Settings) Apply() {
	SetFPSLimit(s.Render.FPSLimit)
	SetOverlayVisible(s.Render.Overlay)
}

// ParseLevel maps a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", name)
	}
}
