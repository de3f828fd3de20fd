package graphics

import "embed"

// Shaders holds the GLSL sources compiled into the binary
//
//go:embed shaders/*.vert shaders/*.frag
var Shaders embed.FS

// Shader file paths within Shaders
const (
	MeshVertShader     = "shaders/mesh.vert"
	BasicFragShader    = "shaders/basic.frag"
	StandardFragShader = "shaders/standard.frag"
	FontVertShader     = "shaders/font.vert"
	FontFragShader     = "shaders/font.frag"
	PanelVertShader    = "shaders/panel.vert"
	PanelFragShader    = "shaders/panel.frag"
)
