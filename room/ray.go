package room

import (
	"github.com/fogleman/pt/pt"
)

// Ray is one straight segment of a sound's path.
//
// Direction is not normalized: its magnitude is the propagation speed, so the ray parameter
// is time. TimeOffset is the global time at which this segment starts.
type Ray struct {
	Origin     pt.Vector
	Direction  pt.Vector
	TimeOffset float64
}

// NewRay returns a ray starting at time zero
func NewRay(origin, direction pt.Vector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the position of the ray at global time t
func (r Ray) At(t float64) pt.Vector {
	return r.Origin.Add(r.Direction.MulScalar(t - r.TimeOffset))
}

// Reflect returns the specular reflection of r off a surface at hit.
//
// The new segment starts at the hit point and time. Direction magnitude is preserved.
func (r Ray) Reflect(hit Hit) Ray {
	n := hit.UnitNormal
	reflected := Ray{
		Origin:     hit.Point,
		Direction:  r.Direction.Sub(n.MulScalar(2 * r.Direction.Dot(n))),
		TimeOffset: hit.Time,
	}
	verifyReflectionLaw(r, n, reflected)
	return reflected
}
