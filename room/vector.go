package room

import (
	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// Scale multiplies v by s with the scalar on the left, mirroring v.MulScalar(s).
func Scale(s float64, v pt.Vector) pt.Vector {
	return v.MulScalar(s)
}

// Mag returns the Euclidean norm of v
func Mag(v pt.Vector) float64 {
	return v.Length()
}

// Unit returns v / |v|.
//
// v must not be the zero vector. The result for a zero vector has NaN components; it is
// never a finite vector.
func Unit(v pt.Vector) pt.Vector {
	return v.DivScalar(v.Length())
}
