package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved vertex layout: position(3), normal(3), uv(2)
const FloatsPerVertex = 8

// Geometry is indexed triangle data kept on the CPU until the renderer uploads it
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// TriangleCount returns the number of indexed triangles
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Validate checks that attribute arrays line up and every index is in range
func (g *Geometry) Validate() error {
	n := len(g.Positions)
	if n == 0 {
		return fmt.Errorf("geometry has no vertices")
	}
	if len(g.Normals) != n {
		return fmt.Errorf("geometry has %d normals for %d vertices", len(g.Normals), n)
	}
	if len(g.UVs) != n {
		return fmt.Errorf("geometry has %d uvs for %d vertices", len(g.UVs), n)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Interleaved packs the vertex attributes for a single VBO upload
func (g *Geometry) Interleaved() []float32 {
	out := make([]float32, 0, len(g.Positions)*FloatsPerVertex)
	for i, p := range g.Positions {
		n := g.Normals[i]
		uv := g.UVs[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// BoundingRadius returns the largest vertex distance from the origin
func (g *Geometry) BoundingRadius() float32 {
	var r float32
	for _, p := range g.Positions {
		if l := p.Len(); l > r {
			r = l
		}
	}
	return r
}

// Append adds o's vertices and triangles, offsetting its indices past the existing vertices
func (g *Geometry) Append(o *Geometry) {
	base := uint32(len(g.Positions))
	g.Positions = append(g.Positions, o.Positions...)
	g.Normals = append(g.Normals, o.Normals...)
	g.UVs = append(g.UVs, o.UVs...)
	for _, idx := range o.Indices {
		g.Indices = append(g.Indices, base+idx)
	}
}

// ComputeNormals replaces Normals with area-weighted smooth vertex normals.
// Indices must be in range; see Validate.
func (g *Geometry) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		// Unnormalized cross product weights by triangle area
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	g.Normals = normals
}
