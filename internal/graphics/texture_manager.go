package graphics

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"starship/internal/scene"
)

// TextureCache uploads scene textures the first frame their image is ready and
// keeps the GL name until Delete. It is only touched from the render thread.
type TextureCache struct {
	textures map[*scene.Texture]uint32
	rejected map[*scene.Texture]bool
}

func NewTextureCache() *TextureCache {
	return &TextureCache{
		textures: make(map[*scene.Texture]uint32),
		rejected: make(map[*scene.Texture]bool),
	}
}

// Get returns the GL texture for t, uploading it on first use. It reports false
// while the image is still loading, failed to load, or has an unusable sampler.
func (c *TextureCache) Get(t *scene.Texture) (uint32, bool) {
	if tex, ok := c.textures[t]; ok {
		return tex, true
	}
	if c.rejected[t] {
		return 0, false
	}
	if err := t.Sampler.Validate(); err != nil {
		slog.Error("texture not uploaded", "path", t.Image.Path(), "error", err)
		c.rejected[t] = true
		return 0, false
	}

	img, ok := t.Ready()
	if !ok {
		return 0, false
	}

	tex := UploadTexture(img, t.Sampler)
	c.textures[t] = tex
	slog.Debug("texture uploaded", "path", t.Image.Path(), "size", img.Rect.Size())
	return tex, true
}

// Delete releases every uploaded texture
func (c *TextureCache) Delete() {
	for t, tex := range c.textures {
		gl.DeleteTextures(1, &tex)
		delete(c.textures, t)
	}
}
