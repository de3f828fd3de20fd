package scene

import (
	"fmt"

	"starship/internal/asset"

	"github.com/go-gl/mathgl/mgl32"
)

// ShipRotationStep is the rotation added to X and Y every frame, in radians
const ShipRotationStep = 0.005

// Ship is the model mesh with its surface texture, tumbling every frame
type Ship struct {
	ModelPath   string
	TexturePath string
	// NodeName selects the mesh inside the model file
	NodeName string
	Step     float32

	model   *asset.Handle[*asset.Model]
	texture *Texture
	id      EntityID
	mounted bool
}

// NewShip requests the model and surface texture in parallel
func NewShip(loader Loader, modelPath, texturePath, nodeName string) *Ship {
	return &Ship{
		ModelPath:   modelPath,
		TexturePath: texturePath,
		NodeName:    nodeName,
		Step:        ShipRotationStep,
		model:       loader.Model(modelPath),
		texture:     ConfigureSurfaceTexture(NewTexture(loader.Image(texturePath))),
	}
}

// Status is ready only when both the model and the texture are ready
func (sh *Ship) Status() Status {
	return combineStatus(handleStatus(sh.model), handleStatus(sh.texture.Image))
}

// Mount extracts the named geometry and adds the lit ship mesh with its rotation update
func (sh *Ship) Mount(s *Scene) error {
	if sh.mounted {
		return nil
	}
	model, ok := sh.model.Value()
	if !ok {
		return fmt.Errorf("ship model %s is %s", sh.ModelPath, sh.model.State())
	}
	if _, ok := sh.texture.Image.Value(); !ok {
		return fmt.Errorf("ship texture %s is %s", sh.TexturePath, sh.texture.Image.State())
	}

	g, err := model.Geometry(sh.NodeName)
	if err != nil {
		return fmt.Errorf("ship geometry: %w", err)
	}

	obj := NewObject("ship", g, Material{
		Kind:  MaterialStandard,
		Color: mgl32.Vec3{1, 1, 1},
		Side:  SideFront,
		Map:   sh.texture,
	})
	sh.id = s.Add(obj)
	s.OnFrame(sh.id, sh.rotate)
	sh.mounted = true
	return nil
}

func (sh *Ship) rotate(obj *Object, _ Tick) {
	obj.Transform.Rotation[0] += sh.Step
	obj.Transform.Rotation[1] += sh.Step
}

// Unmount removes the mesh; its rotation update goes with it
func (sh *Ship) Unmount(s *Scene) {
	if !sh.mounted {
		return
	}
	s.Remove(sh.id)
	sh.mounted = false
}

// ID returns the ship's slot while mounted
func (sh *Ship) ID() (EntityID, bool) {
	return sh.id, sh.mounted
}
