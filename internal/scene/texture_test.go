package scene

import (
	"errors"
	"image"
	"testing"

	"starship/internal/asset"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBackgroundTextureIgnoresImageSize(t *testing.T) {
	for _, size := range []image.Rectangle{image.Rect(0, 0, 1, 1), image.Rect(0, 0, 2048, 512)} {
		tex := ConfigureBackgroundTexture(NewTexture(asset.Resolved("bg.png", image.NewRGBA(size))))
		if tex.Sampler.WrapS != WrapMirroredRepeat || tex.Sampler.WrapT != WrapMirroredRepeat {
			t.Errorf("Expected mirrored repeat for %v, got %v/%v", size, tex.Sampler.WrapS, tex.Sampler.WrapT)
		}
		if tex.Sampler.Repeat != (mgl32.Vec2{5, 5}) {
			t.Errorf("Expected repeat (5, 5) for %v, got %v", size, tex.Sampler.Repeat)
		}
	}
}

func TestTextureConfigurationIsIdempotent(t *testing.T) {
	tex := NewTexture(asset.Resolved("bg.png", image.NewRGBA(image.Rect(0, 0, 4, 4))))
	first := ConfigureBackgroundTexture(tex).Sampler
	second := ConfigureBackgroundTexture(tex).Sampler
	if first != second {
		t.Errorf("Expected identical samplers, got %+v and %+v", first, second)
	}

	surface := ConfigureSurfaceTexture(tex).Sampler
	if surface != ConfigureSurfaceTexture(tex).Sampler {
		t.Error("Expected surface configuration to be idempotent")
	}
	if surface.WrapS != WrapClampToEdge || surface.Repeat != (mgl32.Vec2{1, 1}) {
		t.Errorf("Expected clamp 1x1, got %+v", surface)
	}
}

func TestSamplerValidate(t *testing.T) {
	if err := DefaultSampler().Validate(); err != nil {
		t.Errorf("Expected default sampler to be valid, got %v", err)
	}

	s := DefaultSampler()
	s.Repeat = mgl32.Vec2{0, 1}
	if err := s.Validate(); !errors.Is(err, ErrInvalidRepeat) {
		t.Errorf("Expected ErrInvalidRepeat, got %v", err)
	}
	s.Repeat = mgl32.Vec2{1, -2}
	if err := s.Validate(); !errors.Is(err, ErrInvalidRepeat) {
		t.Errorf("Expected ErrInvalidRepeat, got %v", err)
	}
}

func TestTextureReadyFollowsHandle(t *testing.T) {
	pending := NewTexture(asset.NewHandle[*image.RGBA]("x.png"))
	if _, ok := pending.Ready(); ok {
		t.Error("Expected unrequested image to be unavailable")
	}

	var missing *Texture
	if _, ok := missing.Ready(); ok {
		t.Error("Expected nil texture to be unavailable")
	}

	failed := NewTexture(asset.Failed[*image.RGBA]("x.png", errors.New("boom")))
	if _, ok := failed.Ready(); ok {
		t.Error("Expected failed image to be unavailable")
	}
}

func TestInvalidSamplerIsNeverReady(t *testing.T) {
	tex := ConfigureBackgroundTexture(NewTexture(asset.Resolved("bg.png", image.NewRGBA(image.Rect(0, 0, 4, 4)))))
	if _, ok := tex.Ready(); !ok {
		t.Fatal("Expected configured texture to be ready")
	}

	tex.Sampler.Repeat = mgl32.Vec2{5, 0}
	if _, ok := tex.Ready(); ok {
		t.Error("Expected a zero repeat factor to keep the texture unusable")
	}
}
