package scene

import (
	"starship/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Background sphere dimensions
const (
	BackgroundRadius   = 100
	BackgroundSegments = 64
)

// Background is a large sphere seen from the inside, textured with a tiled star image
type Background struct {
	ImagePath string
	Radius    float32
	Segments  int

	texture *Texture
	id      EntityID
	mounted bool
}

// NewBackground requests the image and prepares its texture
func NewBackground(loader Loader, imagePath string) *Background {
	return &Background{
		ImagePath: imagePath,
		Radius:    BackgroundRadius,
		Segments:  BackgroundSegments,
		texture:   ConfigureBackgroundTexture(NewTexture(loader.Image(imagePath))),
	}
}

// Mount adds the sphere. The texture is attached now and sampled once its image loads;
// a failed image leaves the sphere untextured.
func (b *Background) Mount(s *Scene) error {
	if b.mounted {
		return nil
	}
	obj := NewObject("background", geom.NewSphere(b.Radius, b.Segments, b.Segments), Material{
		Kind:  MaterialBasic,
		Color: mgl32.Vec3{1, 1, 1},
		Side:  SideBack,
		Map:   b.texture,
	})
	b.id = s.Add(obj)
	b.mounted = true
	return nil
}

// Unmount removes the sphere
func (b *Background) Unmount(s *Scene) {
	if !b.mounted {
		return
	}
	s.Remove(b.id)
	b.mounted = false
}

// Status reports the background image's load state
func (b *Background) Status() Status {
	return handleStatus(b.texture.Image)
}

// Texture returns the configured background texture
func (b *Background) Texture() *Texture {
	return b.texture
}

// ID returns the sphere's slot while mounted
func (b *Background) ID() (EntityID, bool) {
	return b.id, b.mounted
}
