package response

import (
	"math"
)

// Peak is an arrival expressed as (time_ms, gain_db)
type Peak struct {
	TimeMs float64
	GainDb float64
}

// Peaks converts samples to peaks. Times are relative to the first arrival.
func Peaks(samples []Sample) []Peak {
	if len(samples) == 0 {
		return nil
	}
	first := samples[0].Time
	for _, s := range samples {
		first = math.Min(first, s.Time)
	}
	peaks := make([]Peak, 0, len(samples))
	for _, s := range samples {
		peaks = append(peaks, Peak{
			TimeMs: (s.Time - first) * 1000,
			GainDb: 10 * math.Log10(s.Amplitude),
		})
	}
	return peaks
}

// ClusterPeaks merges runs of neighbouring peaks into the loudest peak of each run. Two
// consecutive peaks share a run when they are within timeThreshold ms and gainThreshold dB
// of each other. Peaks must be sorted by time.
//
// Within a run the loudest peak wins; peaks within 1e-6 dB of each other resolve to the
// earliest.
func ClusterPeaks(peaks []Peak, timeThreshold, gainThreshold float64) []Peak {
	if len(peaks) == 0 {
		return nil
	}

	louder := func(p, than Peak) bool {
		if math.Abs(p.GainDb-than.GainDb) < 1e-6 {
			return p.TimeMs < than.TimeMs
		}
		return p.GainDb > than.GainDb
	}

	var result []Peak
	best, prev := peaks[0], peaks[0]
	for _, p := range peaks[1:] {
		if p.TimeMs-prev.TimeMs > timeThreshold || math.Abs(p.GainDb-prev.GainDb) > gainThreshold {
			result = append(result, best)
			best = p
		} else if louder(p, best) {
			best = p
		}
		prev = p
	}
	return append(result, best)
}
