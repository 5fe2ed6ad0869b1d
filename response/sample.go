// Package response turns receiver captures into impulse-response data.
package response

import (
	"cmp"
	"slices"

	"github.com/jdginn/go-sound-scene/room"
)

// Sample is one arrival of the impulse response
type Sample struct {
	// Arrival time in seconds
	Time float64
	// Residual intensity, as a fraction of the emitted intensity
	Amplitude float64
}

// FromCaptures converts captures to samples sorted by arrival time
func FromCaptures(captures []room.Capture) []Sample {
	samples := make([]Sample, 0, len(captures))
	for _, c := range captures {
		samples = append(samples, Sample{Time: c.Hit.Time, Amplitude: c.Intensity})
	}
	slices.SortStableFunc(samples, func(a, b Sample) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return samples
}
