package room

import (
	"math"
)

// Speed of sound in air in m/s. Emitted directions are scaled to this magnitude so that ray
// parameters are measured in seconds.
const SPEED_OF_SOUND = 343.0

// Sounds whose residual intensity drops below this are discarded as inaudible
const AUDIBILITY_THRESHOLD = 1e-9

const MS float64 = 1.0 / 1000.0

func toDB(gain float64) float64 {
	return 10 * math.Log10(gain)
}

func fromDB(gainDB float64) float64 {
	return math.Pow(10, gainDB/10)
}

// ToDB converts an intensity ratio to decibels
func ToDB(gain float64) float64 {
	return toDB(gain)
}
