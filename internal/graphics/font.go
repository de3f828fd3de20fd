package graphics

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single glyph's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX float32
	AtlasY float32
	Width  float32
	Height float32
	// Offset from the pen position on the baseline
	BearingX float32
	BearingY float32
	Advance  int
}

// FontAtlas is a baked glyph sheet and its per-rune metrics
type FontAtlas struct {
	Image      *image.Alpha
	Characters map[rune]FontCharacter
	TextureID  uint32
}

const atlasWidth = 512

// BakeFontAtlas rasterizes the printable ASCII range of an OpenType font into a
// single-channel atlas. Nothing is uploaded.
func BakeFontAtlas(fontBytes []byte, fontPixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const padding = 1

	// First pass packs rows to find the atlas height
	offsetX, offsetY, rowH := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil || dr.Empty() {
			continue
		}
		if offsetX+dr.Dx() > atlasWidth {
			offsetX = 0
			offsetY += rowH + padding
			rowH = 0
		}
		offsetX += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}
	atlasH := nextPowerOfTwo(offsetY + rowH)
	if atlasH == 0 {
		return nil, errors.New("font has no drawable ASCII glyphs")
	}

	atlas := &FontAtlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH)),
		Characters: make(map[rune]FontCharacter),
	}

	offsetX, offsetY, rowH = 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		fc := FontCharacter{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}
		if mask == nil || dr.Empty() {
			// Space still advances the pen
			atlas.Characters[r] = fc
			continue
		}

		if offsetX+dr.Dx() > atlasWidth {
			offsetX = 0
			offsetY += rowH + padding
			rowH = 0
		}
		dst := image.Rect(offsetX, offsetY, offsetX+dr.Dx(), offsetY+dr.Dy())
		draw.Draw(atlas.Image, dst, mask, maskp, draw.Src)

		fc.AtlasX, fc.AtlasY = float32(offsetX), float32(offsetY)
		fc.Width, fc.Height = float32(dr.Dx()), float32(dr.Dy())
		atlas.Characters[r] = fc

		offsetX += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}
	return atlas, nil
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// BuildFontAtlas bakes the Go Regular face and uploads it as a GL_RED texture
func BuildFontAtlas(fontPixels int) (*FontAtlas, error) {
	atlas, err := BakeFontAtlas(goregular.TTF, fontPixels)
	if err != nil {
		return nil, err
	}
	size := atlas.Image.Rect.Size()

	gl.GenTextures(1, &atlas.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, atlas.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return atlas, nil
}

// Measure returns the width and tallest glyph height of text at scale
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			fc = a.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		maxH = max(maxH, fc.Height*scale)
	}
	return width, maxH
}

// Vertices lays out text with its baseline at y. Each glyph is two triangles of
// (x, y, u, v) vertices.
func (a *FontAtlas) Vertices(text string, x, y, scale float32) []float32 {
	size := a.Image.Rect.Size()
	aw, ah := float32(size.X), float32(size.Y)

	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 {
			xPos := x + fc.BearingX*scale
			yPos := y - fc.BearingY*scale
			w, h := fc.Width*scale, fc.Height*scale
			u, v := fc.AtlasX/aw, fc.AtlasY/ah
			du, dv := fc.Width/aw, fc.Height/ah
			vertices = append(vertices,
				xPos, yPos+h, u, v+dv,
				xPos, yPos, u, v,
				xPos+w, yPos, u+du, v,
				xPos, yPos+h, u, v+dv,
				xPos+w, yPos, u+du, v,
				xPos+w, yPos+h, u+du, v+dv,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return vertices
}

// Delete frees the atlas texture
func (a *FontAtlas) Delete() {
	if a.TextureID != 0 {
		gl.DeleteTextures(1, &a.TextureID)
		a.TextureID = 0
	}
}

// FontRenderer draws text from an uploaded atlas in pixel coordinates
type FontRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer compiles the font shader and allocates a dynamic vertex buffer
func NewFontRenderer(atlas *FontAtlas) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, errors.New("invalid font atlas")
	}
	shader, err := NewShader(Shaders, FontVertShader, FontFragShader)
	if err != nil {
		return nil, err
	}
	fr := &FontRenderer{atlas: atlas, shader: shader, projection: mgl32.Ident4()}

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return fr, nil
}

// SetProjection sets the pixel-space projection used for subsequent draws
func (fr *FontRenderer) SetProjection(m mgl32.Mat4) {
	fr.projection = m
}

// Atlas returns the glyph atlas
func (fr *FontRenderer) Atlas() *FontAtlas {
	return fr.atlas
}

// RenderLines draws lines top to bottom starting at baseline yStart in one draw call
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	var vertices []float32
	y := yStart
	for _, line := range lines {
		vertices = append(vertices, fr.atlas.Vertices(line, x, y, scale)...)
		y += lineStep
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", &fr.projection[0])
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan the buffer each draw to avoid stalling on the previous frame
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Delete frees the renderer's GL objects and the atlas texture
func (fr *FontRenderer) Delete() {
	gl.DeleteBuffers(1, &fr.vbo)
	gl.DeleteVertexArrays(1, &fr.vao)
	fr.shader.Delete()
	fr.atlas.Delete()
}
