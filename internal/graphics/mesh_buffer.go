package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"starship/internal/geom"
)

// MeshBuffer is a geometry uploaded to GPU buffers. Attribute layout:
// location 0 position, 1 normal, 2 uv.
type MeshBuffer struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// NewMeshBuffer uploads g as a static indexed mesh
func NewMeshBuffer(g *geom.Geometry) *MeshBuffer {
	mb := &MeshBuffer{IndexCount: int32(len(g.Indices))}
	vertices := g.Interleaved()

	gl.GenVertexArrays(1, &mb.VAO)
	gl.GenBuffers(1, &mb.VBO)
	gl.GenBuffers(1, &mb.EBO)

	gl.BindVertexArray(mb.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, mb.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	stride := int32(geom.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return mb
}

// Draw issues the indexed draw call
func (mb *MeshBuffer) Draw() {
	gl.BindVertexArray(mb.VAO)
	gl.DrawElements(gl.TRIANGLES, mb.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers
func (mb *MeshBuffer) Delete() {
	gl.DeleteBuffers(1, &mb.EBO)
	gl.DeleteBuffers(1, &mb.VBO)
	gl.DeleteVertexArrays(1, &mb.VAO)
	mb.IndexCount = 0
}
