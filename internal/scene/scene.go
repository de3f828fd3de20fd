// Package scene holds the retained scene graph: camera, light, a table of mesh
// objects and the per-frame updates that mutate them.
package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking at a target point
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	// FOV is the vertical field of view in degrees
	FOV  float32
	Near float32
	Far  float32
}

// View returns the world-to-camera matrix
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// SpotLight is a cone light aimed at Target
type SpotLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	// Angle is the cone half-angle in radians
	Angle float32
	// Penumbra in [0, 1] is the fraction of the cone that fades out
	Penumbra   float32
	CastShadow bool
}

// Cones returns the cosines of the outer cone and of the start of the penumbra
func (l SpotLight) Cones() (outer, inner float32) {
	outer = cos32(l.Angle)
	inner = cos32(l.Angle * (1 - l.Penumbra))
	return outer, inner
}

// Direction returns the unit vector from the light towards its target
func (l SpotLight) Direction() mgl32.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}

// EntityID addresses a slot in the scene's object table
type EntityID int

// Tick is passed to every per-frame update
type Tick struct {
	Frame uint64
	DT    float64
}

// UpdateFunc mutates the object in its slot once per frame
type UpdateFunc func(obj *Object, tick Tick)

type frameUpdate struct {
	id EntityID
	fn UpdateFunc
}

// Scene is the root container consumed by the renderer
type Scene struct {
	Camera     Camera
	Light      SpotLight
	Background mgl32.Vec3
	ShadowMap  bool

	objects []*Object
	free    []EntityID
	updates []frameUpdate
	frame   uint64
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// Add places obj in the table and returns its id. Freed slots are reused.
func (s *Scene) Add(obj *Object) EntityID {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.objects[id] = obj
		return id
	}
	s.objects = append(s.objects, obj)
	return EntityID(len(s.objects) - 1)
}

// Remove clears the slot and drops every update registered against it
func (s *Scene) Remove(id EntityID) {
	if _, ok := s.Object(id); !ok {
		return
	}
	s.objects[id] = nil
	s.free = append(s.free, id)

	kept := s.updates[:0]
	for _, u := range s.updates {
		if u.id != id {
			kept = append(kept, u)
		}
	}
	s.updates = kept
}

// Object resolves an id to its object
func (s *Scene) Object(id EntityID) (*Object, bool) {
	if id < 0 || int(id) >= len(s.objects) || s.objects[id] == nil {
		return nil, false
	}
	return s.objects[id], true
}

// Objects returns the live objects in slot order
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Len returns the number of live objects
func (s *Scene) Len() int {
	n := 0
	for _, o := range s.objects {
		if o != nil {
			n++
		}
	}
	return n
}

// OnFrame registers fn to run every frame against the object in slot id.
// Updates run in registration order.
func (s *Scene) OnFrame(id EntityID, fn UpdateFunc) {
	if _, ok := s.Object(id); !ok {
		panic(fmt.Sprintf("scene: OnFrame for empty slot %d", id))
	}
	s.updates = append(s.updates, frameUpdate{id: id, fn: fn})
}

// Advance runs one frame of updates
func (s *Scene) Advance(dt float64) {
	s.frame++
	tick := Tick{Frame: s.frame, DT: dt}
	for _, u := range s.updates {
		obj, ok := s.Object(u.id)
		if !ok {
			panic(fmt.Sprintf("scene: frame update for empty slot %d", u.id))
		}
		u.fn(obj, tick)
	}
}

// Frame returns the number of frames advanced so far
func (s *Scene) Frame() uint64 {
	return s.frame
}

func cos32(a float32) float32 {
	return float32(math.Cos(float64(a)))
}
