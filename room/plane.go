package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Cross sections of the scene's reflectors, after the slicer in
// https://github.com/fogleman/choppy

type Point2D struct {
	X, Y float64
}

// To2D drops the Z component of v
func To2D(v pt.Vector) Point2D {
	return Point2D{v.X, v.Y}
}

func (p Point2D) Translate(x, y float64) Point2D {
	return Point2D{p.X + x, p.Y + y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

type Path2D []Point2D

// BoundingBox returns the extent of the path. An empty path has an inverted (infinite) box.
func (p Path2D) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	XMin, YMin = math.Inf(1), math.Inf(1)
	XMax, YMax = math.Inf(-1), math.Inf(-1)
	for _, p := range p {
		XMin = math.Min(XMin, p.X)
		XMax = math.Max(XMax, p.X)
		YMin = math.Min(YMin, p.Y)
		YMax = math.Max(YMax, p.Y)
	}
	return
}

// Plane is a cutting plane. U and V span the plane and give the axes of its 2D coordinates.
type Plane struct {
	Point  pt.Vector
	Normal pt.Vector
	U, V   pt.Vector
}

func MakePlane(point, normal pt.Vector) Plane {
	// Horizontal in-plane axis, or +Y when the plane itself is horizontal
	u := V(0, 1, 0)
	if normal.X != 0 || normal.Y != 0 {
		u = V(-normal.Y, normal.X, 0).Normalize()
	}
	return Plane{
		Point:  point,
		Normal: normal,
		U:      u,
		V:      u.Cross(normal).Normalize(),
	}
}

// Project expresses point in the plane's (U, V) coordinates, with Z always zero
func (p Plane) Project(point pt.Vector) pt.Vector {
	d := point.Sub(p.Point)
	return V(d.Dot(p.U), d.Dot(p.V), 0)
}

// signed distance of v along the normal, scaled by the normal's length
func (p Plane) height(v pt.Vector) float64 {
	return v.Sub(p.Point).Dot(p.Normal)
}

// intersectSegment finds where the segment from v0 to v1 crosses the plane
func (p Plane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	h0, h1 := p.height(v0), p.height(v1)
	dh := h0 - h1
	if math.Abs(dh) < 1e-9 {
		return pt.Vector{}, false
	}
	f := h0 / dh
	if f < 0 || f > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(v1.Sub(v0).MulScalar(f)), true
}

// SliceTriangle returns the segment where the plane cuts t, oriented so that every
// triangle of a closed reflector winds its segments the same way around the section.
func (p Plane) SliceTriangle(t Triangle) (pt.Vector, pt.Vector, bool) {
	var cut [2]pt.Vector
	n := 0
	for _, edge := range [3][2]pt.Vector{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
		if n == 2 {
			break
		}
		if v, ok := p.intersectSegment(edge[0], edge[1]); ok {
			cut[n] = v
			n++
		}
	}
	if n < 2 || cut[0] == cut[1] {
		return pt.Vector{}, pt.Vector{}, false
	}
	if cut[1].Sub(cut[0]).Cross(p.Normal).Dot(t.Normal()) >= 0 {
		cut[0], cut[1] = cut[1], cut[0]
	}
	return cut[0], cut[1], true
}

type Path []pt.Vector

// joinPaths chains segments end to start. Segments are visited in input order, so the
// result is deterministic.
func joinPaths(segments []Path) []Path {
	ends := make(map[pt.Vector][]pt.Vector, len(segments))
	var starts []pt.Vector
	for _, s := range segments {
		if _, seen := ends[s[0]]; !seen {
			starts = append(starts, s[0])
		}
		ends[s[0]] = append(ends[s[0]], s[len(s)-1])
	}

	var result []Path
	for _, start := range starts {
		for len(ends[start]) > 0 {
			path := Path{start}
			for v := start; len(ends[v]) > 0; {
				next := ends[v]
				ends[v] = next[:len(next)-1]
				v = next[len(next)-1]
				path = append(path, v)
			}
			result = append(result, path)
		}
	}
	return result
}

// Slice cuts every reflector triangle with the plane and joins the segments into outlines
func (p Plane) Slice(reflectors []Reflector) []Path {
	var segments []Path
	for _, r := range reflectors {
		for _, t := range r.Geometry {
			if v1, v2, ok := p.SliceTriangle(t); ok {
				segments = append(segments, Path{v1, v2})
			}
		}
	}
	return joinPaths(segments)
}

// SectionPaths slices the reflectors and projects the outlines into plane coordinates
func (p Plane) SectionPaths(reflectors []Reflector) []Path2D {
	result := []Path2D{}
	for _, path := range p.Slice(reflectors) {
		projected := make(Path2D, len(path))
		for i, v := range path {
			projected[i] = To2D(p.Project(v))
		}
		result = append(result, projected)
	}
	return result
}
