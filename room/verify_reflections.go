//go:build verify_reflections
// +build verify_reflections

package room

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

// Constants for verification
const (
	lengthEpsilon = 1e-7
	angleEpsilon  = 1e-7
)

func init() {
	fmt.Println("Reflection verification enabled.")
}

func verifyReflectionLaw(incident Ray, normal pt.Vector, reflected Ray) {
	// 1. Angle of incidence should equal angle of reflection
	inLen := incident.Direction.Length()
	outLen := reflected.Direction.Length()
	incidentAngle := math.Acos(math.Abs(incident.Direction.Dot(normal)) / inLen)
	reflectedAngle := math.Acos(math.Abs(reflected.Direction.Dot(normal)) / outLen)
	if math.Abs(incidentAngle-reflectedAngle) > angleEpsilon {
		panic(fmt.Sprintf("angle of incidence %f != angle of reflection %f", incidentAngle, reflectedAngle))
	}

	// 2. Reflection must not change the propagation speed
	if math.Abs(inLen-outLen) > lengthEpsilon*inLen {
		panic(fmt.Sprintf("reflection changed direction magnitude from %f to %f", inLen, outLen))
	}
}
