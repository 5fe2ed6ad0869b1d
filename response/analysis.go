package response

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jdginn/go-sound-scene/room"
)

var (
	ErrNotEnoughDecay = errors.New("decay curve does not span the requested range")
	ErrMissingArrival = errors.New("missing direct or reflected arrival")
)

// InitialTimeDelay is the gap in seconds between the direct sound and the first reflection
// arriving at a receiver. Captures should all belong to the same receiver.
func InitialTimeDelay(captures []room.Capture) (float64, error) {
	direct, reflected := math.Inf(1), math.Inf(1)
	for _, c := range captures {
		if c.Bounces == 0 {
			direct = math.Min(direct, c.Hit.Time)
		} else {
			reflected = math.Min(reflected, c.Hit.Time)
		}
	}
	if math.IsInf(direct, 1) || math.IsInf(reflected, 1) {
		return 0, ErrMissingArrival
	}
	return reflected - direct, nil
}

// EnergyOverWindow sums the amplitude of every sample arriving before window seconds
func EnergyOverWindow(samples []Sample, window float64) float64 {
	total := 0.0
	for _, s := range samples {
		if s.Time < window {
			total += s.Amplitude
		}
	}
	return total
}

// Echogram bins sample energy into consecutive bins of binWidth seconds covering
// [0, duration). Samples outside that range are ignored.
func Echogram(samples []Sample, binWidth, duration float64) ([]float64, error) {
	if binWidth <= 0 || duration <= 0 {
		return nil, fmt.Errorf("bin width and duration must be positive, got %g and %g", binWidth, duration)
	}
	bins := int(math.Ceil(duration / binWidth))
	end := float64(bins) * binWidth
	dividers := floats.Span(make([]float64, bins+1), 0, end)

	// stat.Histogram wants sorted x inside the divider range
	var times, weights []float64
	for _, s := range samples {
		if s.Time >= 0 && s.Time < end {
			times = append(times, s.Time)
			weights = append(weights, s.Amplitude)
		}
	}
	if len(times) == 0 {
		return make([]float64, bins), nil
	}
	stat.SortWeighted(times, weights)
	return stat.Histogram(nil, dividers, times, weights), nil
}

// Schroeder returns the backward-integrated energy decay curve in dB relative to the total.
// Bins after the last arrival are -Inf.
func Schroeder(energy []float64) []float64 {
	curve := make([]float64, len(energy))
	total := floats.Sum(energy)
	if total <= 0 {
		for i := range curve {
			curve[i] = math.Inf(-1)
		}
		return curve
	}
	remaining := total
	for i, e := range energy {
		curve[i] = 10 * math.Log10(remaining/total)
		remaining -= e
		if remaining < 0 {
			remaining = 0
		}
	}
	return curve
}

// DecayTime extrapolates the time for the curve to fall by 60 dB from a linear fit of the
// part between fromDB and toDB (for example -5 and -35 for T30).
func DecayTime(curve []float64, binWidth, fromDB, toDB float64) (float64, error) {
	var x, y []float64
	for i, level := range curve {
		if level <= fromDB && level >= toDB {
			x = append(x, (float64(i)+0.5)*binWidth)
			y = append(y, level)
		}
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%d points between %g dB and %g dB: %w", len(x), fromDB, toDB, ErrNotEnoughDecay)
	}
	_, slope := stat.LinearRegression(x, y, nil, false)
	if slope >= 0 {
		return 0, fmt.Errorf("non-decaying slope %g dB/s: %w", slope, ErrNotEnoughDecay)
	}
	return -60 / slope, nil
}
