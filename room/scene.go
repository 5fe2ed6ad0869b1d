package room

import (
	"errors"

	"github.com/fogleman/pt/pt"
)

// ErrNoReceivers is returned when a scene that must be heard has nowhere to capture sound
var ErrNoReceivers = errors.New("scene has no receivers")

// Scene holds the static geometry and emitters of a simulation. It is only changed while
// being built; simulating never modifies it.
type Scene struct {
	objects  []Object
	emitters []Emitter
	// Receivers in the order they were added, used to index captures
	receivers []Receiver
}

func NewScene() *Scene {
	return &Scene{}
}

// AddEmitter appends e and returns s for chaining
func (s *Scene) AddEmitter(e Emitter) *Scene {
	s.emitters = append(s.emitters, e)
	return s
}

// AddObject appends o and returns s for chaining
func (s *Scene) AddObject(o Object) *Scene {
	s.objects = append(s.objects, o)
	if r, ok := o.(Receiver); ok {
		s.receivers = append(s.receivers, r)
	}
	return s
}

func (s *Scene) Objects() []Object {
	return s.objects
}

func (s *Scene) Emitters() []Emitter {
	return s.emitters
}

func (s *Scene) Receivers() []Receiver {
	return s.receivers
}

// Reflectors returns every Reflector in the scene, in insertion order
func (s *Scene) Reflectors() []Reflector {
	var reflectors []Reflector
	for _, o := range s.objects {
		if r, ok := o.(Reflector); ok {
			reflectors = append(reflectors, r)
		}
	}
	return reflectors
}

// LineOfSight reports whether the straight path from one point to another is clear of
// reflectors. When it is blocked, the first blocking hit is returned with its Time replaced
// by the distance from the start of the path.
func (s *Scene) LineOfSight(from, to pt.Vector) (Hit, bool) {
	ray := NewRay(from, to.Sub(from))
	var blocking []Interaction
	for _, r := range s.Reflectors() {
		for _, tri := range r.Geometry {
			// Ray time runs from 0 at from to 1 at to
			if hit, ok := IntersectTriangle(ray, tri); ok && hit.Time > SELF_INTERSECTION_EPSILON && hit.Time < 1 {
				blocking = append(blocking, ObjectHit{Hit: hit, Reflectance: r.Reflectance})
			}
		}
	}
	first, ok := earliest(blocking)
	if !ok {
		return Hit{}, true
	}
	hit := first.hit()
	hit.Time *= Mag(to.Sub(from))
	return hit, false
}
