package room

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
)

// 3MF models are authored in millimetres; scenes are in metres
const SCALE = 1000

// DEFAULT_SURFACE names the reflectance used for objects without their own assignment
const DEFAULT_SURFACE = "default"

// LoadReflectors3MF reads every build item of a 3MF file as a Reflector.
//
// reflectance maps object names to reflectance; objects not listed use the DEFAULT_SURFACE
// entry, which must be present.
func LoadReflectors3MF(filepath string, reflectance map[string]float64) ([]Reflector, error) {
	defaultReflectance, ok := reflectance[DEFAULT_SURFACE]
	if !ok {
		return nil, fmt.Errorf("no %q reflectance for unassigned surfaces", DEFAULT_SURFACE)
	}

	var model go3mf.Model
	r, err := go3mf.OpenReader(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening 3mf file: %w", err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding 3mf file: %w", err)
	}

	reflectors := []Reflector{}
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}

		alpha, ok := reflectance[obj.Name]
		if !ok {
			alpha = defaultReflectance
		}

		vertex := func(i uint32) pt.Vector {
			v := obj.Mesh.Vertices.Vertex[i]
			return pt.Vector{
				X: float64(v.X() / SCALE),
				Y: float64(v.Y() / SCALE),
				Z: float64(v.Z() / SCALE),
			}
		}

		geometry := make([]Triangle, 0, len(obj.Mesh.Triangles.Triangle))
		for _, t := range obj.Mesh.Triangles.Triangle {
			geometry = append(geometry, Triangle{vertex(t.V1), vertex(t.V2), vertex(t.V3)})
		}
		reflectors = append(reflectors, Reflector{
			Name:        obj.Name,
			Geometry:    geometry,
			Reflectance: alpha,
		})
	}
	return reflectors, nil
}

// Mesh converts the scene's reflectors into a single pt mesh
func (s *Scene) Mesh() *pt.Mesh {
	ptTriangles := []*pt.Triangle{}
	for _, r := range s.Reflectors() {
		ptMaterial := pt.Material{Reflectivity: r.Reflectance}
		for _, t := range r.Geometry {
			ptTri := &pt.Triangle{}
			ptTri.Material = &ptMaterial
			ptTri.V1 = t.A
			ptTri.V2 = t.B
			ptTri.V3 = t.C
			ptTri.FixNormals()
			ptTriangles = append(ptTriangles, ptTri)
		}
	}
	return pt.NewMesh(ptTriangles)
}

// SaveSTL writes the scene's reflective geometry to an STL file
func (s *Scene) SaveSTL(path string) error {
	if err := s.Mesh().SaveSTL(path); err != nil {
		return fmt.Errorf("saving stl: %w", err)
	}
	return nil
}
