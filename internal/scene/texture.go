package scene

import (
	"errors"
	"fmt"
	"image"

	"starship/internal/asset"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidRepeat is returned for a sampler with a non-positive repeat factor
var ErrInvalidRepeat = errors.New("texture repeat must be positive")

// WrapMode is the sampling policy outside the [0, 1] UV range
type WrapMode int

const (
	WrapClampToEdge WrapMode = iota
	WrapRepeat
	WrapMirroredRepeat
)

func (w WrapMode) String() string {
	switch w {
	case WrapRepeat:
		return "repeat"
	case WrapMirroredRepeat:
		return "mirrored-repeat"
	default:
		return "clamp"
	}
}

// Background texture tiling. The source image is low resolution, so it is tiled and
// mirrored across the sphere; seams along mirror lines are expected.
const (
	BackgroundWrap   = WrapMirroredRepeat
	BackgroundRepeat = 5
)

// Sampler holds how a texture is sampled
type Sampler struct {
	WrapS  WrapMode
	WrapT  WrapMode
	Repeat mgl32.Vec2
	// FlipY uploads the image bottom row first so v=1 is the top of the image
	FlipY bool
}

// DefaultSampler clamps on both axes with no tiling
func DefaultSampler() Sampler {
	return Sampler{
		WrapS:  WrapClampToEdge,
		WrapT:  WrapClampToEdge,
		Repeat: mgl32.Vec2{1, 1},
		FlipY:  true,
	}
}

// Validate reports a sampler that cannot be used
func (s Sampler) Validate() error {
	if s.Repeat.X() <= 0 || s.Repeat.Y() <= 0 {
		return fmt.Errorf("repeat %v: %w", s.Repeat, ErrInvalidRepeat)
	}
	return nil
}

// Texture is an image bound to a material together with its sampler settings
type Texture struct {
	Image   *asset.Handle[*image.RGBA]
	Sampler Sampler
}

// NewTexture wraps an image request with the default sampler
func NewTexture(img *asset.Handle[*image.RGBA]) *Texture {
	return &Texture{Image: img, Sampler: DefaultSampler()}
}

// ConfigureBackgroundTexture sets mirrored-repeat wrapping and 5x5 tiling.
// The result does not depend on the image size.
func ConfigureBackgroundTexture(t *Texture) *Texture {
	t.Sampler.WrapS = BackgroundWrap
	t.Sampler.WrapT = BackgroundWrap
	t.Sampler.Repeat = mgl32.Vec2{BackgroundRepeat, BackgroundRepeat}
	return t
}

// ConfigureSurfaceTexture keeps the default clamp and 1x1 tiling
func ConfigureSurfaceTexture(t *Texture) *Texture {
	t.Sampler.WrapS = WrapClampToEdge
	t.Sampler.WrapT = WrapClampToEdge
	t.Sampler.Repeat = mgl32.Vec2{1, 1}
	return t
}

// Ready returns the decoded image once it has loaded. A texture whose sampler
// fails Validate is never ready.
func (t *Texture) Ready() (*image.RGBA, bool) {
	if t == nil || t.Image == nil || t.Sampler.Validate() != nil {
		return nil, false
	}
	return t.Image.Value()
}
