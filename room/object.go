package room

import (
	"fmt"

	"github.com/fogleman/pt/pt"
)

// Object is anything placed in a Scene: either a Reflector or a Receiver.
type Object interface {
	object()
}

// Reflector is a triangle mesh that bounces sound, keeping Reflectance of the incoming
// intensity on each bounce.
type Reflector struct {
	Name        string
	Geometry    []Triangle
	Reflectance float64
}

// Receiver is a spherical listening volume. Rays that reach it are captured.
type Receiver struct {
	Name     string
	Geometry Sphere
}

func (Reflector) object() {}
func (Receiver) object()  {}

// NewReflectorFromFan builds a Reflector from an ordered polygon outline
func NewReflectorFromFan(name string, points []pt.Vector, reflectance float64) (Reflector, error) {
	geometry, err := BuildGeometryFromTriangleFan(points)
	if err != nil {
		return Reflector{}, fmt.Errorf("building reflector %q: %w", name, err)
	}
	return Reflector{
		Name:        name,
		Geometry:    geometry,
		Reflectance: reflectance,
	}, nil
}

// NewBox builds the six walls of an axis-aligned box spanning min to max as one Reflector.
// Every face normal points into the box.
func NewBox(name string, min, max pt.Vector, reflectance float64) Reflector {
	corner := func(x, y, z int) pt.Vector {
		pick := func(i int, lo, hi float64) float64 {
			if i == 0 {
				return lo
			}
			return hi
		}
		return V(pick(x, min.X, max.X), pick(y, min.Y, max.Y), pick(z, min.Z, max.Z))
	}
	faces := [][]pt.Vector{
		{corner(0, 0, 0), corner(0, 1, 0), corner(1, 1, 0), corner(1, 0, 0)}, // floor
		{corner(0, 0, 1), corner(1, 0, 1), corner(1, 1, 1), corner(0, 1, 1)}, // ceiling
		{corner(0, 0, 0), corner(1, 0, 0), corner(1, 0, 1), corner(0, 0, 1)},
		{corner(0, 1, 0), corner(0, 1, 1), corner(1, 1, 1), corner(1, 1, 0)},
		{corner(0, 0, 0), corner(0, 0, 1), corner(0, 1, 1), corner(0, 1, 0)},
		{corner(1, 0, 0), corner(1, 1, 0), corner(1, 1, 1), corner(1, 0, 1)},
	}
	box := Reflector{Name: name, Reflectance: reflectance}
	for _, face := range faces {
		// Four points always fan into two triangles
		triangles, _ := BuildGeometryFromTriangleFan(face)
		box.Geometry = append(box.Geometry, triangles...)
	}
	return box
}
