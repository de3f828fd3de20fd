package scene

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"testing"
	"testing/fstest"

	"starship/internal/asset"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var testFS fstest.MapFS

func TestMain(m *testing.M) {
	testFS = fstest.MapFS{
		"assets/ship3.glb":       {Data: shipGLB()},
		"assets/steelwall2.jpg":  {Data: solidPNG(8, 8)},
		"assets/background2.png": {Data: solidPNG(32, 16)},
	}
	os.Exit(m.Run())
}

func solidPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func shipGLB() []byte {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name: "Hull",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2})),
			Attributes: gltf.Attribute{
				gltf.POSITION:   modeler.WritePosition(doc, [][3]float32{{0, 1, 0}, {-1, -1, 0}, {1, -1, 0}}),
				gltf.NORMAL:     modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{{0.5, 0}, {0, 1}, {1, 1}}),
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "Root"}, {Name: "Ship", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0, 1)

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func composeLoaded(t *testing.T, opts Options) (*Root, *asset.Loader) {
	t.Helper()
	loader := asset.NewLoader(testFS)
	t.Cleanup(loader.Close)
	root := Compose(loader, opts)
	loader.Wait()
	loader.Poll()
	return root, loader
}

func TestPendingAssetsShowBackgroundOnly(t *testing.T) {
	loader := asset.NewLoader(testFS)
	defer loader.Close()

	root := Compose(loader, DefaultOptions())
	root.Update(1.0 / 60)

	if root.Scene.Len() != 1 {
		t.Fatalf("Expected only the background while loading, got %d objects", root.Scene.Len())
	}
	if got := root.Scene.Objects()[0].Name; got != "background" {
		t.Errorf("Expected background object, got %q", got)
	}
	if root.Status().Ship != SuspensePending {
		t.Errorf("Expected ship pending, got %v", root.Status().Ship)
	}
	if _, ok := root.ShipRotation(); ok {
		t.Error("Expected no ship rotation before mount")
	}
}

func TestResolvedAssetsMountShip(t *testing.T) {
	root, _ := composeLoaded(t, DefaultOptions())
	root.Update(1.0 / 60)

	if root.Status().Ship != SuspenseMounted {
		t.Fatalf("Expected ship mounted, got %v (%v)", root.Status().Ship, root.Status().ShipErr)
	}
	if root.Scene.Len() != 2 {
		t.Fatalf("Expected background and ship, got %d objects", root.Scene.Len())
	}

	id, _ := root.Ship.ID()
	ship, ok := root.Scene.Object(id)
	if !ok {
		t.Fatal("Expected ship slot to resolve")
	}
	if ship.Material.Kind != MaterialStandard {
		t.Errorf("Expected lit material, got %v", ship.Material.Kind)
	}
	if ship.Geometry.VertexCount() != 3 {
		t.Errorf("Expected extracted geometry with 3 vertices, got %d", ship.Geometry.VertexCount())
	}
	if _, ok := ship.Material.Map.Ready(); !ok {
		t.Error("Expected ship texture to be ready")
	}
	if ship.Material.Map.Sampler.Repeat != (mgl32.Vec2{1, 1}) || ship.Material.Map.Sampler.WrapS != WrapClampToEdge {
		t.Errorf("Expected default surface sampler, got %+v", ship.Material.Map.Sampler)
	}
}

func TestShipRotationAfterFrames(t *testing.T) {
	root, _ := composeLoaded(t, DefaultOptions())

	for i := 0; i < 200; i++ {
		root.Update(1.0 / 60)
	}

	rot, ok := root.ShipRotation()
	if !ok {
		t.Fatal("Expected ship to be mounted")
	}
	if math.Abs(float64(rot.X())-1.0) > 1e-4 || math.Abs(float64(rot.Y())-1.0) > 1e-4 {
		t.Errorf("Expected rotation (1, 1) after 200 frames, got (%f, %f)", rot.X(), rot.Y())
	}
	if rot.Z() != 0 {
		t.Errorf("Expected no Z rotation, got %f", rot.Z())
	}
}

func TestShipRotationIsLinearInFrames(t *testing.T) {
	for _, n := range []int{1, 10, 1000} {
		root, _ := composeLoaded(t, DefaultOptions())
		for i := 0; i < n; i++ {
			root.Update(0)
		}
		rot, _ := root.ShipRotation()
		want := ShipRotationStep * float64(n)
		if math.Abs(float64(rot.X())-want) > 1e-3 || math.Abs(float64(rot.Y())-want) > 1e-3 {
			t.Errorf("After %d frames expected %f, got (%f, %f)", n, want, rot.X(), rot.Y())
		}
	}
}

func TestMissingAssetFailsDistinctly(t *testing.T) {
	opts := DefaultOptions()
	opts.ShipTexture = "assets/missing.jpg"
	root, _ := composeLoaded(t, opts)
	root.Update(1.0 / 60)

	st := root.Status()
	if st.Ship != SuspenseFailed {
		t.Fatalf("Expected failed boundary, got %v", st.Ship)
	}
	if st.ShipErr == nil {
		t.Error("Expected failure to carry the load error")
	}
	if root.Scene.Len() != 1 {
		t.Errorf("Expected background only after failure, got %d objects", root.Scene.Len())
	}
}

func TestUnknownNodeFailsWithDescriptiveError(t *testing.T) {
	opts := DefaultOptions()
	opts.ShipNode = "Shuttle"
	root, _ := composeLoaded(t, opts)
	root.Update(1.0 / 60)

	st := root.Status()
	if st.Ship != SuspenseFailed {
		t.Fatalf("Expected failed boundary, got %v", st.Ship)
	}
	if !errors.Is(st.ShipErr, asset.ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", st.ShipErr)
	}
}

func TestBackgroundSphere(t *testing.T) {
	root, _ := composeLoaded(t, DefaultOptions())

	id, ok := root.Background.ID()
	if !ok {
		t.Fatal("Expected background mounted")
	}
	bg, _ := root.Scene.Object(id)

	if bg.Material.Kind != MaterialBasic {
		t.Errorf("Expected unlit material, got %v", bg.Material.Kind)
	}
	if bg.Material.Side != SideBack {
		t.Errorf("Expected back-side rendering, got %v", bg.Material.Side)
	}
	if got, want := bg.Geometry.VertexCount(), 65*65; got != want {
		t.Errorf("Expected %d vertices, got %d", want, got)
	}

	camDist := root.Scene.Camera.Position.Len()
	if r := bg.Geometry.BoundingRadius(); r <= camDist {
		t.Errorf("Expected sphere radius %f to enclose camera at %f", r, camDist)
	}

	s := bg.Material.Map.Sampler
	if s.WrapS != WrapMirroredRepeat || s.WrapT != WrapMirroredRepeat {
		t.Errorf("Expected mirrored repeat, got %v/%v", s.WrapS, s.WrapT)
	}
	if s.Repeat != (mgl32.Vec2{5, 5}) {
		t.Errorf("Expected repeat (5, 5), got %v", s.Repeat)
	}
	if root.Background.Status().State != asset.StateReady {
		t.Errorf("Expected background image ready, got %v", root.Background.Status())
	}
}

func TestBackgroundMissingImageStaysUntextured(t *testing.T) {
	opts := DefaultOptions()
	opts.BackgroundImage = "assets/none.png"
	root, _ := composeLoaded(t, opts)

	if root.Background.Status().State != asset.StateFailed {
		t.Errorf("Expected failed background image, got %v", root.Background.Status())
	}
	if _, ok := root.Background.Texture().Ready(); ok {
		t.Error("Expected no image to sample")
	}
	if root.Scene.Len() < 1 {
		t.Error("Expected background sphere to stay mounted")
	}
}

func TestSceneRootDefaults(t *testing.T) {
	loader := asset.NewLoader(testFS)
	defer loader.Close()
	s := Compose(loader, DefaultOptions()).Scene

	if s.Camera.Position != (mgl32.Vec3{0, 0, 15}) {
		t.Errorf("Expected camera at (0,0,15), got %v", s.Camera.Position)
	}
	if s.Light.Intensity != 0.6 || s.Light.Angle != 0.2 || s.Light.Penumbra != 1 {
		t.Errorf("Unexpected light %+v", s.Light)
	}
	if s.Background != (mgl32.Vec3{}) {
		t.Errorf("Expected black background, got %v", s.Background)
	}
	if BackgroundRadius <= s.Camera.Position.Len() {
		t.Errorf("Expected background radius to exceed camera distance")
	}
}

func TestObjectTableReusesSlots(t *testing.T) {
	s := New()
	a := s.Add(NewObject("a", nil, Material{}))
	b := s.Add(NewObject("b", nil, Material{}))

	calls := 0
	s.OnFrame(a, func(obj *Object, _ Tick) { calls++ })
	s.Remove(a)
	s.Advance(0)
	if calls != 0 {
		t.Errorf("Expected removed object's update to be dropped, got %d calls", calls)
	}

	c := s.Add(NewObject("c", nil, Material{}))
	if c != a {
		t.Errorf("Expected slot %d to be reused, got %d", a, c)
	}
	if obj, ok := s.Object(b); !ok || obj.Name != "b" {
		t.Error("Expected unrelated slot to be untouched")
	}
	if _, ok := s.Object(EntityID(42)); ok {
		t.Error("Expected out-of-range id to miss")
	}
}

func TestUpdatesRunInRegistrationOrder(t *testing.T) {
	s := New()
	a := s.Add(NewObject("a", nil, Material{}))
	b := s.Add(NewObject("b", nil, Material{}))

	var order []string
	s.OnFrame(b, func(obj *Object, _ Tick) { order = append(order, obj.Name) })
	s.OnFrame(a, func(obj *Object, _ Tick) { order = append(order, obj.Name) })
	s.Advance(0)

	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Errorf("Expected [b a], got %v", order)
	}
	if s.Frame() != 1 {
		t.Errorf("Expected frame 1, got %d", s.Frame())
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := IdentityTransform()
	if !tr.Matrix().ApproxEqual(mgl32.Ident4()) {
		t.Error("Expected identity matrix")
	}

	tr.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !vecNear(got, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected +X rotated to -Z, got %v", got)
	}
}

// vecNear compares with an absolute tolerance, so components near zero still match
func vecNear(a, b mgl32.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func TestSpotLightCones(t *testing.T) {
	l := DefaultOptions().Light
	outer, inner := l.Cones()
	if inner != 1 {
		t.Errorf("Expected full penumbra to start at the axis, got %f", inner)
	}
	if math.Abs(float64(outer)-math.Cos(0.2)) > 1e-6 {
		t.Errorf("Expected outer cone cos(0.2), got %f", outer)
	}
}
