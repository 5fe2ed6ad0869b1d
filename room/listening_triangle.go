package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Value from Rod Gervais' book Home Recording Studio: Build It Like The Pros
const LISTEN_DIST_INTO_TRIANGLE = 0.38

// ListeningTriangle places a stereo pair of emitters and a listening position in front of a
// reference wall. X points into the room, Y runs along the wall and Z is height.
type ListeningTriangle struct {
	// A point on the front wall
	ReferencePosition pt.Vector
	// Distance of the sources from the front wall
	DistFromFront float64
	// Distance of the sources from the horizontal center of the triangle
	DistFromCenter float64
	// Height of the sources
	SourceHeight float64
	// Height of the listen position
	ListenHeight float64
}

func (t ListeningTriangle) LeftSourcePosition() pt.Vector {
	return pt.Vector{
		X: t.ReferencePosition.X + t.DistFromFront,
		Y: t.ReferencePosition.Y - t.DistFromCenter,
		Z: t.SourceHeight,
	}
}

func (t ListeningTriangle) LeftSourceNormal() pt.Vector {
	return t.ListenPosition().Sub(t.LeftSourcePosition()).Normalize()
}

func (t ListeningTriangle) RightSourcePosition() pt.Vector {
	return pt.Vector{
		X: t.ReferencePosition.X + t.DistFromFront,
		Y: t.ReferencePosition.Y + t.DistFromCenter,
		Z: t.SourceHeight,
	}
}

func (t ListeningTriangle) RightSourceNormal() pt.Vector {
	return t.ListenPosition().Sub(t.RightSourcePosition()).Normalize()
}

func (t ListeningTriangle) ListenPosition() pt.Vector {
	return pt.Vector{
		X: t.ReferencePosition.X + t.DistFromFront + (t.DistFromCenter * math.Sqrt(3)) + LISTEN_DIST_INTO_TRIANGLE,
		Y: t.ReferencePosition.Y,
		Z: t.ListenHeight,
	}
}

func (t ListeningTriangle) ListenDistance() float64 {
	return t.ListenPosition().Sub(t.LeftSourcePosition()).Length()
}

// Emitters returns the left and right sources aimed at the listening position
func (t ListeningTriangle) Emitters(soundsPerTick int, directivity *Directivity) []Emitter {
	return []Emitter{
		{
			Origin:        t.LeftSourcePosition(),
			SoundsPerTick: soundsPerTick,
			Axis:          t.LeftSourceNormal(),
			Directivity:   directivity,
		},
		{
			Origin:        t.RightSourcePosition(),
			SoundsPerTick: soundsPerTick,
			Axis:          t.RightSourceNormal(),
			Directivity:   directivity,
		},
	}
}

// Receiver returns a spherical receiver of the given radius at the listening position
func (t ListeningTriangle) Receiver(radius float64) Receiver {
	return Receiver{
		Name:     "listening position",
		Geometry: Sphere{Origin: t.ListenPosition(), Radius: radius},
	}
}
