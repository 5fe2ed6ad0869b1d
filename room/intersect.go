package room

import (
	"math"
)

// Machine epsilon for float64
const EPSILON = 0x1p-52

// IntersectTriangle implements the Möller-Trumbore ray-triangle intersection.
//
// Hits on an edge count. Hits behind the ray origin are reported too; callers filter by time.
func IntersectTriangle(ray Ray, tri Triangle) (Hit, bool) {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)

	norm := ray.Direction.Cross(ac)
	angle := ab.Dot(norm)

	// Parallel to the triangle's plane
	if angle > -EPSILON && angle < EPSILON {
		return Hit{}, false
	}

	f := 1.0 / angle
	offset := ray.Origin.Sub(tri.A)

	u := f * offset.Dot(norm)
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	qvec := offset.Cross(ab)
	v := f * ray.Direction.Dot(qvec)
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := f*ac.Dot(qvec) + ray.TimeOffset
	return Hit{
		Time:       t,
		Point:      ray.At(t),
		UnitNormal: Unit(ac.Cross(ab)),
	}, true
}

// IntersectSphere returns the zero, one (tangent) or two points where ray crosses sphere.
//
// Both normals point away from the direction the ray approaches from: the entry normal
// points out of the sphere and the exit normal is negated.
func IntersectSphere(ray Ray, sphere Sphere) []Hit {
	// Direction is scaled by the propagation speed, so project onto it and divide by |D|^2
	// to stay in ray-parameter units.
	dd := ray.Direction.Dot(ray.Direction)
	oc := sphere.Origin.Sub(ray.Origin)
	tca := oc.Dot(ray.Direction) / dd
	d2 := oc.Dot(oc) - tca*tca*dd
	radius2 := sphere.Radius * sphere.Radius

	if d2 > radius2 {
		return nil
	}

	thc := math.Sqrt((radius2 - d2) / dd)

	if thc > -EPSILON && thc < EPSILON {
		t := tca + ray.TimeOffset
		p := ray.At(t)
		return []Hit{{
			Time:       t,
			Point:      p,
			UnitNormal: Unit(p.Sub(sphere.Origin)),
		}}
	}

	t0 := tca - thc + ray.TimeOffset
	t1 := tca + thc + ray.TimeOffset
	p0 := ray.At(t0)
	p1 := ray.At(t1)
	return []Hit{
		{
			Time:       t0,
			Point:      p0,
			UnitNormal: Unit(p0.Sub(sphere.Origin)),
		},
		{
			Time:       t1,
			Point:      p1,
			UnitNormal: Unit(p1.Sub(sphere.Origin)).Negate(),
		},
	}
}
