package room

import (
	"github.com/fogleman/pt/pt"
)

// Hit is a single ray/geometry intersection
type Hit struct {
	// Global arrival time, including the ray's TimeOffset
	Time       float64
	Point      pt.Vector
	UnitNormal pt.Vector
}

// CompareHits orders hits by time. Comparisons involving NaN report equal.
func CompareHits(a, b Hit) int {
	switch {
	case a.Time < b.Time:
		return -1
	case a.Time > b.Time:
		return 1
	default:
		return 0
	}
}

// Interaction is a Hit tagged with what the ray struck. It is either an ObjectHit or a
// ReceiverHit.
type Interaction interface {
	hit() Hit
}

// ObjectHit means the ray struck a reflective surface
type ObjectHit struct {
	Hit         Hit
	Reflectance float64
}

// ReceiverHit means the ray reached a receiver and is captured there
type ReceiverHit struct {
	Hit       Hit
	Intensity float64
	// Index of the receiver among the scene's receivers
	Receiver int
}

func (o ObjectHit) hit() Hit   { return o.Hit }
func (r ReceiverHit) hit() Hit { return r.Hit }

// CompareInteractions orders interactions by the time of the wrapped hit, regardless of kind.
func CompareInteractions(a, b Interaction) int {
	return CompareHits(a.hit(), b.hit())
}

// earliest returns the interaction with the smallest time. The first of equal (or
// incomparable) candidates wins.
func earliest(candidates []Interaction) (Interaction, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if CompareInteractions(c, best) < 0 {
			best = c
		}
	}
	return best, true
}
