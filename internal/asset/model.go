package asset

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"starship/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	// ErrNodeNotFound is returned when a model has no node or mesh with the requested name
	ErrNodeNotFound = errors.New("node not found")
	// ErrNoMesh is returned when the named node carries no triangle geometry
	ErrNoMesh = errors.New("node has no triangle mesh")
)

// Model is a parsed glTF document
type Model struct {
	path string
	doc  *gltf.Document
}

// NewModel wraps an already decoded document
func NewModel(path string, doc *gltf.Document) *Model {
	return &Model{path: path, doc: doc}
}

// DecodeModel reads a .glb or .gltf file from fsys.
// External buffers of a .gltf are resolved relative to the file's directory.
func DecodeModel(fsys fs.FS, p string) (*Model, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	dir, err := fs.Sub(fsys, path.Dir(p))
	if err != nil {
		return nil, fmt.Errorf("could not open model directory: %w", err)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(bytes.NewReader(data), dir).Decode(doc); err != nil {
		return nil, fmt.Errorf("could not decode model %s: %w", p, err)
	}
	return NewModel(p, doc), nil
}

// Path returns the file the model was loaded from
func (m *Model) Path() string { return m.path }

// NodeNames lists the names of all nodes, then meshes, in document order
func (m *Model) NodeNames() []string {
	names := make([]string, 0, len(m.doc.Nodes)+len(m.doc.Meshes))
	for _, n := range m.doc.Nodes {
		if n.Name != "" {
			names = append(names, n.Name)
		}
	}
	for _, mesh := range m.doc.Meshes {
		if mesh.Name != "" {
			names = append(names, mesh.Name)
		}
	}
	return names
}

// findMesh resolves name against node names first, then mesh names
func (m *Model) findMesh(name string) (*gltf.Mesh, error) {
	for _, n := range m.doc.Nodes {
		if n.Name != name {
			continue
		}
		if n.Mesh == nil || int(*n.Mesh) >= len(m.doc.Meshes) {
			return nil, fmt.Errorf("%s: node %q: %w", m.path, name, ErrNoMesh)
		}
		return m.doc.Meshes[*n.Mesh], nil
	}
	for _, mesh := range m.doc.Meshes {
		if mesh.Name == name {
			return mesh, nil
		}
	}
	return nil, fmt.Errorf("%s: %q (available: %s): %w",
		m.path, name, strings.Join(m.NodeNames(), ", "), ErrNodeNotFound)
}

// Geometry extracts the triangle primitives of the named node as one geometry.
// Missing normals are computed per primitive; missing UVs default to zero.
func (m *Model) Geometry(name string) (*geom.Geometry, error) {
	mesh, err := m.findMesh(name)
	if err != nil {
		return nil, err
	}

	g := &geom.Geometry{}
	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		if _, ok := prim.Attributes[gltf.POSITION]; !ok {
			continue
		}
		pg, err := m.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: primitive %d: %w", m.path, name, i, err)
		}
		g.Append(pg)
	}

	if len(g.Positions) == 0 {
		return nil, fmt.Errorf("%s: %q: %w", m.path, name, ErrNoMesh)
	}
	return g, nil
}

// accessor resolves an accessor index, rejecting references past the document's list
func (m *Model) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(m.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(m.doc.Accessors))
	}
	return m.doc.Accessors[idx], nil
}

// primitive reads one triangle primitive into a validated geometry
func (m *Model) primitive(prim *gltf.Primitive) (*geom.Geometry, error) {
	g := &geom.Geometry{}

	acr, err := m.accessor(prim.Attributes[gltf.POSITION])
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(m.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	for _, p := range positions {
		g.Positions = append(g.Positions, mgl32.Vec3(p))
	}

	nIdx, hasNormals := prim.Attributes[gltf.NORMAL]
	if hasNormals {
		acr, err := m.accessor(nIdx)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		normals, err := modeler.ReadNormal(m.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		for _, n := range normals {
			g.Normals = append(g.Normals, mgl32.Vec3(n))
		}
	} else {
		g.Normals = make([]mgl32.Vec3, len(positions))
	}

	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := m.accessor(uvIdx)
		if err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
		uvs, err := modeler.ReadTextureCoord(m.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
		for _, uv := range uvs {
			g.UVs = append(g.UVs, mgl32.Vec2(uv))
		}
	} else {
		g.UVs = make([]mgl32.Vec2, len(positions))
	}

	if prim.Indices != nil {
		acr, err := m.accessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		g.Indices, err = modeler.ReadIndices(m.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		for j := range positions {
			g.Indices = append(g.Indices, uint32(j))
		}
	}

	// Indices must be in range before normals are accumulated from them
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if !hasNormals {
		g.ComputeNormals()
	}
	return g, nil
}
