package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Options are the fixed inputs of the scene root
type Options struct {
	CameraPosition mgl32.Vec3
	Light          SpotLight

	ShipModel   string
	ShipTexture string
	ShipNode    string

	BackgroundImage string
}

// DefaultOptions returns the stock camera, light and asset paths
func DefaultOptions() Options {
	return Options{
		CameraPosition: mgl32.Vec3{0, 0, 15},
		Light: SpotLight{
			Color:      mgl32.Vec3{1, 1, 1},
			Intensity:  0.6,
			Position:   mgl32.Vec3{30, 30, 50},
			Angle:      0.2,
			Penumbra:   1,
			CastShadow: true,
		},
		ShipModel:       "assets/ship3.glb",
		ShipTexture:     "assets/steelwall2.jpg",
		ShipNode:        "Ship",
		BackgroundImage: "assets/background2.png",
	}
}

// RootStatus summarizes the asset state of both visual elements
type RootStatus struct {
	Ship       SuspenseState
	ShipErr    error
	Background Status
}

// Root owns the one scene and the components mounted into it
type Root struct {
	Scene      *Scene
	Ship       *Ship
	Suspense   *Suspense
	Background *Background
}

// Compose builds the scene: camera, light, the suspended ship and the background.
// Asset requests start here; the ship mounts on a later Update once they resolve.
func Compose(loader Loader, opts Options) *Root {
	s := New()
	s.Camera = Camera{
		Position: opts.CameraPosition,
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      75,
		Near:     0.1,
		Far:      1000,
	}
	s.Light = opts.Light
	s.Background = mgl32.Vec3{0, 0, 0}
	s.ShadowMap = true

	ship := NewShip(loader, opts.ShipModel, opts.ShipTexture, opts.ShipNode)
	r := &Root{
		Scene:      s,
		Ship:       ship,
		Suspense:   NewSuspense(ship),
		Background: NewBackground(loader, opts.BackgroundImage),
	}

	// Composition is static; neither mount can fail here
	_ = r.Suspense.Mount(s)
	_ = r.Background.Mount(s)
	return r
}

// Update resolves suspended components, then advances the per-frame updates
func (r *Root) Update(dt float64) {
	r.Suspense.Update(r.Scene)
	r.Scene.Advance(dt)
}

// Status reports the ship boundary and background image states
func (r *Root) Status() RootStatus {
	return RootStatus{
		Ship:       r.Suspense.State(),
		ShipErr:    r.Suspense.Err(),
		Background: r.Background.Status(),
	}
}

// ShipRotation returns the ship's current Euler rotation, if mounted
func (r *Root) ShipRotation() (mgl32.Vec3, bool) {
	id, ok := r.Ship.ID()
	if !ok {
		return mgl32.Vec3{}, false
	}
	obj, ok := r.Scene.Object(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return obj.Transform.Rotation, true
}

// Dispose unmounts everything from the scene
func (r *Root) Dispose() {
	r.Suspense.Unmount(r.Scene)
	r.Background.Unmount(r.Scene)
}
