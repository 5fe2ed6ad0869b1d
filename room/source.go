package room

import (
	"math"
	"sort"

	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
)

// Source supplies uniform random scalars in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// RandomDirection draws a unit vector uniformly over the sphere.
//
// Azimuth is uniform in [0, 2pi) and the polar angle is acos(2u-1), which makes the
// distribution uniform in solid angle rather than bunched at the poles.
func RandomDirection(src Source) pt.Vector {
	theta := 2 * math.Pi * src.Float64()
	phi := math.Acos(2*src.Float64() - 1)
	return pt.Vector{
		X: math.Sin(phi) * math.Cos(theta),
		Y: math.Sin(phi) * math.Sin(theta),
		Z: math.Cos(phi),
	}
}

// Directivity computes the gain of a sound emitted at some angle off an emitter's axis
type Directivity struct {
	f lin.Function
}

// NewDirectivity returns a Directivity from a map of off-axis angle in degrees to gain in dB.
// Gain should always be zero or negative.
func NewDirectivity(gains map[float64]float64) *Directivity {
	angles := make([]float64, 0, len(gains))
	for k := range gains {
		angles = append(angles, k)
	}
	sort.Float64s(angles)
	dbs := make([]float64, len(angles))
	for i, a := range angles {
		dbs[i] = gains[a]
	}
	return &Directivity{f: lin.Function{X: angles, Y: dbs}}
}

// Gain returns the gain in dB at angle degrees off axis, holding the end values outside the
// measured range.
func (d *Directivity) Gain(angle float64) float64 {
	if len(d.f.X) == 0 {
		return 0
	}
	angle = math.Max(angle, d.f.X[0])
	angle = math.Min(angle, d.f.X[len(d.f.X)-1])
	return d.f.At(angle)
}

// Emitter is a point source that radiates SoundsPerTick rays in one burst
type Emitter struct {
	Origin        pt.Vector
	SoundsPerTick int
	// Axis and Directivity are optional. Without them the emitter is omnidirectional and
	// every sound starts at intensity 1.
	Axis        pt.Vector
	Directivity *Directivity
}

// Sound is a live member of the ray population
type Sound struct {
	Ray       Ray
	Intensity float64
	// Number of reflections so far
	Bounces int
}

func (e Emitter) initialIntensity(direction pt.Vector) float64 {
	if e.Directivity == nil || e.Axis == (pt.Vector{}) {
		return 1.0
	}
	cos := direction.Dot(Unit(e.Axis))
	angle := math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
	return fromDB(e.Directivity.Gain(angle))
}

// Emit produces this emitter's burst of sounds.
func (e Emitter) Emit(src Source) []Sound {
	sounds := make([]Sound, 0, e.SoundsPerTick)
	for i := 0; i < e.SoundsPerTick; i++ {
		dir := RandomDirection(src)
		sounds = append(sounds, Sound{
			Ray:       NewRay(e.Origin, dir.MulScalar(SPEED_OF_SOUND)),
			Intensity: e.initialIntensity(dir),
		})
	}
	return sounds
}
