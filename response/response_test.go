package response

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-sound-scene/room"
)

func TestFromCaptures(t *testing.T) {
	captures := []room.Capture{
		{Hit: room.Hit{Time: 0.03}, Intensity: 0.1},
		{Hit: room.Hit{Time: 0.01}, Intensity: 1},
		{Hit: room.Hit{Time: 0.03}, Intensity: 0.2},
	}
	assert.Equal(t, []Sample{
		{Time: 0.01, Amplitude: 1},
		{Time: 0.03, Amplitude: 0.1},
		{Time: 0.03, Amplitude: 0.2},
	}, FromCaptures(captures))
	assert.Empty(t, FromCaptures(nil))
}

func TestCSVRoundTrip(t *testing.T) {
	samples := []Sample{
		{Time: 0.0026239067055393583, Amplitude: 1},
		{Time: 0.011, Amplitude: 0.512},
		{Time: 1.5, Amplitude: 1.2e-9},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samples))
	assert.True(t, strings.HasPrefix(buf.String(), CSV_HEADER+"\n"))
	assert.Contains(t, buf.String(), "0.011, 0.512\n")

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, got)

	path := filepath.Join(t.TempDir(), "captures.csv")
	require.NoError(t, SaveCSV(path, samples))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err = ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"too_many_fields", "time, amplitude\n1, 2, 3\n", "line 2: expected 2 fields"},
		{"bad_time", "x, 1\n", "line 1: parsing time"},
		{"bad_amplitude", "time, amplitude\n\n0.1, loud\n", "line 3: parsing amplitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestEnergyOverWindow(t *testing.T) {
	samples := []Sample{{0.001, 1}, {0.004, 0.5}, {0.006, 0.25}, {0.02, 0.125}}
	assert.Equal(t, 1.5, EnergyOverWindow(samples, 0.005))
	assert.Equal(t, 1.875, EnergyOverWindow(samples, 1))
	assert.Zero(t, EnergyOverWindow(samples, 0))
}

func TestEchogram(t *testing.T) {
	samples := []Sample{
		{Time: 1.9, Amplitude: 0.1},
		{Time: 0.1, Amplitude: 0.5},
		{Time: 0.7, Amplitude: 0.25},
		{Time: 0.6, Amplitude: 0.25},
		{Time: 2.5, Amplitude: 1},
	}
	energy, err := Echogram(samples, 0.5, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0, 0.1}, energy)

	energy, err = Echogram(nil, 0.5, 1.2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, energy)

	_, err = Echogram(samples, 0, 2)
	assert.Error(t, err)
}

func TestSchroeder(t *testing.T) {
	curve := Schroeder([]float64{0.5, 0.25, 0.25, 0})
	require.Len(t, curve, 4)
	assert.InDelta(t, 0, curve[0], 1e-12)
	assert.InDelta(t, -3.0103, curve[1], 1e-4)
	assert.InDelta(t, -6.0206, curve[2], 1e-4)
	assert.True(t, math.IsInf(curve[3], -1))

	for _, level := range Schroeder([]float64{0, 0}) {
		assert.True(t, math.IsInf(level, -1))
	}
}

func TestDecayTime(t *testing.T) {
	// 10 dB per 10 ms bin is 1000 dB/s, so 60 dB takes 60 ms
	curve := make([]float64, 8)
	for i := range curve {
		curve[i] = -10 * float64(i)
	}
	t30, err := DecayTime(curve, 0.01, -5, -35)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, t30, 1e-9)

	_, err = DecayTime([]float64{0, -1, -2}, 0.01, -5, -35)
	assert.ErrorIs(t, err, ErrNotEnoughDecay)

	_, err = DecayTime([]float64{-10, -10, -10}, 0.01, -5, -35)
	assert.ErrorIs(t, err, ErrNotEnoughDecay)
}

func TestEchogramDecayOfBox(t *testing.T) {
	scene := room.NewScene().
		AddObject(room.NewBox("room", room.V(0, 0, 0), room.V(8, 6, 4), 0.7)).
		AddEmitter(room.Emitter{Origin: room.V(2, 2, 1.5), SoundsPerTick: 2000}).
		AddObject(room.Receiver{Geometry: room.Sphere{Origin: room.V(5, 4, 1.5), Radius: 0.5}})

	captures := scene.Simulate()
	samples := FromCaptures(captures)
	require.NotEmpty(t, samples)

	binWidth := 0.005
	energy, err := Echogram(samples, binWidth, samples[len(samples)-1].Time+binWidth)
	require.NoError(t, err)
	assert.InDelta(t, EnergyOverWindow(samples, math.Inf(1)), sum(energy), 1e-9)

	curve := Schroeder(energy)
	for i := 1; i < len(curve); i++ {
		assert.LessOrEqual(t, curve[i], curve[i-1])
	}
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestPeaks(t *testing.T) {
	assert.Nil(t, Peaks(nil))

	peaks := Peaks([]Sample{{Time: 0.012, Amplitude: 0.1}, {Time: 0.01, Amplitude: 1}})
	require.Len(t, peaks, 2)
	assert.InDelta(t, 2, peaks[0].TimeMs, 1e-9)
	assert.InDelta(t, -10, peaks[0].GainDb, 1e-9)
	assert.InDelta(t, 0, peaks[1].TimeMs, 1e-9)
	assert.InDelta(t, 0, peaks[1].GainDb, 1e-9)
}

func TestClusterPeaks(t *testing.T) {
	tests := []struct {
		name  string
		peaks []Peak
		want  []Peak
	}{
		{"empty", nil, nil},
		{
			"merges_neighbours",
			[]Peak{{0, -3}, {0.02, -1}, {0.04, -2}, {1, -10}, {1.03, -20}},
			[]Peak{{0.02, -1}, {1, -10}, {1.03, -20}},
		},
		{"tie_keeps_earliest", []Peak{{0, -1}, {0.01, -1}}, []Peak{{0, -1}}},
		{"chain", []Peak{{0, -6}, {0.04, -4}, {0.08, -2}}, []Peak{{0.08, -2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClusterPeaks(tt.peaks, 0.05, 4))
		})
	}
}

func TestPlotEchogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echogram.png")
	require.NoError(t, PlotEchogram(path, []float64{1, 0.5, 0, 0.01}, 0.001, 400, 200))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, PlotEchogram(path, []float64{0, 0}, 0.001, 400, 200))
}

func TestInitialTimeDelay(t *testing.T) {
	captures := []room.Capture{
		{Hit: room.Hit{Time: 0.020}, Bounces: 2},
		{Hit: room.Hit{Time: 0.005}, Bounces: 0},
		{Hit: room.Hit{Time: 0.012}, Bounces: 1},
		{Hit: room.Hit{Time: 0.006}, Bounces: 0},
	}
	itd, err := InitialTimeDelay(captures)
	require.NoError(t, err)
	assert.InDelta(t, 0.007, itd, 1e-12)

	_, err = InitialTimeDelay(captures[:1])
	assert.ErrorIs(t, err, ErrMissingArrival)
	_, err = InitialTimeDelay(nil)
	assert.ErrorIs(t, err, ErrMissingArrival)
}
