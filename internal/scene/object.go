package scene

import (
	"starship/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an object in world space. Rotation is Euler angles in radians,
// applied in X, Y, Z order.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// IdentityTransform returns a transform at the origin with unit scale
func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the model matrix T * Rx * Ry * Rz * S
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// MaterialKind selects the shading model
type MaterialKind int

const (
	// MaterialBasic ignores lighting
	MaterialBasic MaterialKind = iota
	// MaterialStandard is lit by the scene's light
	MaterialStandard
)

func (k MaterialKind) String() string {
	if k == MaterialStandard {
		return "standard"
	}
	return "basic"
}

// Side selects which triangle faces are drawn
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// Material describes surface shading for a mesh
type Material struct {
	Kind  MaterialKind
	Color mgl32.Vec3
	Side  Side
	// Map is sampled when its image is ready; otherwise Color alone is used
	Map *Texture
}

// Object is one renderable mesh in the scene table
type Object struct {
	Name      string
	Geometry  *geom.Geometry
	Material  Material
	Transform Transform
	Visible   bool
}

// NewObject creates a visible object with an identity transform
func NewObject(name string, g *geom.Geometry, m Material) *Object {
	return &Object{
		Name:      name,
		Geometry:  g,
		Material:  m,
		Transform: IdentityTransform(),
		Visible:   true,
	}
}
