package room

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectivityGain(t *testing.T) {
	d := NewDirectivity(map[float64]float64{
		180: -20,
		0:   0,
		90:  -6,
	})

	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"on_axis", 0, 0},
		{"interpolated", 45, -3},
		{"knot", 90, -6},
		{"interpolated_rear", 135, -13},
		{"behind", 180, -20},
		{"clamped_low", -10, 0},
		{"clamped_high", 200, -20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, d.Gain(tt.angle), 1e-12)
		})
	}
}

func TestDirectivityEmpty(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, NewDirectivity(nil).Gain(30))
}

func TestEmitterInitialIntensity(t *testing.T) {
	d := NewDirectivity(map[float64]float64{0: 0, 90: -10, 180: -20})

	tests := []struct {
		name    string
		emitter Emitter
		want    float64
	}{
		{"omnidirectional", Emitter{}, 1},
		{"no_axis", Emitter{Directivity: d}, 1},
		{"behind", Emitter{Axis: V(1, 0, 0), Directivity: d}, 0.01},
		{"side", Emitter{Axis: V(0, 3, 0), Directivity: d}, 0.1},
		{"on_axis", Emitter{Axis: V(-2, 0, 0), Directivity: d}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.emitter.SoundsPerTick = 1
			sounds := tt.emitter.Emit(towardNegativeX())
			require.Len(t, sounds, 1)
			assert.InDelta(t, tt.want, sounds[0].Intensity, 1e-9)
		})
	}
}

func TestEmit(t *testing.T) {
	assert := assert.New(t)
	e := Emitter{Origin: V(1, 2, 3), SoundsPerTick: 100}
	sounds := e.Emit(rand.New(rand.NewSource(1)))
	require.Len(t, sounds, 100)
	for _, s := range sounds {
		assert.Equal(e.Origin, s.Ray.Origin)
		assert.Zero(s.Ray.TimeOffset)
		assert.Zero(s.Bounces)
		assert.Equal(1.0, s.Intensity)
		assert.InDelta(SPEED_OF_SOUND, Mag(s.Ray.Direction), 1e-9)
	}

	again := e.Emit(rand.New(rand.NewSource(1)))
	assert.Equal(sounds, again)
}
