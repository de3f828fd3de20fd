package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewSphere builds a UV sphere centered on the origin.
// Vertices run pole to pole in (heightSegs+1) rings of (widthSegs+1) vertices;
// the seam column is duplicated so u spans [0, 1] without wrapping.
func NewSphere(radius float32, widthSegs, heightSegs int) *Geometry {
	if widthSegs < 3 {
		widthSegs = 3
	}
	if heightSegs < 2 {
		heightSegs = 2
	}

	count := (widthSegs + 1) * (heightSegs + 1)
	g := &Geometry{
		Positions: make([]mgl32.Vec3, 0, count),
		Normals:   make([]mgl32.Vec3, 0, count),
		UVs:       make([]mgl32.Vec2, 0, count),
		Indices:   make([]uint32, 0, widthSegs*(heightSegs-1)*6),
	}

	grid := make([][]uint32, heightSegs+1)
	var index uint32
	for iy := 0; iy <= heightSegs; iy++ {
		row := make([]uint32, widthSegs+1)
		v := float64(iy) / float64(heightSegs)

		// Pole vertices are shifted half a segment so their triangles sample the middle of the cell
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(widthSegs)
		} else if iy == heightSegs {
			uOffset = -0.5 / float64(widthSegs)
		}

		theta := v * math.Pi
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
		for ix := 0; ix <= widthSegs; ix++ {
			u := float64(ix) / float64(widthSegs)
			phi := u * 2 * math.Pi
			sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

			n := mgl32.Vec3{
				float32(-cosPhi * sinTheta),
				float32(cosTheta),
				float32(sinPhi * sinTheta),
			}
			g.Positions = append(g.Positions, n.Mul(radius))
			g.Normals = append(g.Normals, n)
			g.UVs = append(g.UVs, mgl32.Vec2{float32(u + uOffset), float32(1 - v)})

			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// The first and last rings collapse to a point, so only one triangle per cell there
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegs-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	return g
}
