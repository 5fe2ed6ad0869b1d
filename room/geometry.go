package room

import (
	"errors"
	"fmt"

	"github.com/fogleman/pt/pt"
)

type Triangle struct {
	A, B, C pt.Vector
}

type Sphere struct {
	Origin pt.Vector
	Radius float64
}

// Normal is the fixed outward face normal, unit((C-A) x (B-A)).
//
// Mesh winding decides which side is outward; it is never flipped to face an incoming ray.
func (t Triangle) Normal() pt.Vector {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	return Unit(ac.Cross(ab))
}

var ErrTooFewPoints = errors.New("triangle fan needs at least 3 points")

// BuildGeometryFromTriangleFan fans an ordered polygon outline into triangles.
//
// Triangle i is (points[0], points[i], points[i+1]), so n points produce n-2 triangles.
func BuildGeometryFromTriangleFan(points []pt.Vector) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("got %d points: %w", len(points), ErrTooFewPoints)
	}
	triangles := make([]Triangle, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		triangles = append(triangles, Triangle{points[0], points[i], points[i+1]})
	}
	return triangles, nil
}
