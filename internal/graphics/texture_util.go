package graphics

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"starship/internal/asset"
	"starship/internal/scene"
)

// glWrap maps a sampler wrap mode to its GL enum
func glWrap(w scene.WrapMode) int32 {
	switch w {
	case scene.WrapRepeat:
		return gl.REPEAT
	case scene.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

// UploadTexture creates a mipmapped 2D texture from img using the sampler's wrap
// modes. Rows are flipped first when the sampler asks for it, so uv (0,0) lands on
// the bottom-left of the source image.
func UploadTexture(img *image.RGBA, s scene.Sampler) uint32 {
	if s.FlipY {
		img = asset.FlipVertical(img)
	}
	size := img.Rect.Size()

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(s.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(s.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
