package interact

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goroom "github.com/jdginn/go-sound-scene/room"
)

func annotations() goroom.AnnotationsJSON {
	return goroom.AnnotationsJSON{
		Zones: []goroom.ZoneJSON{{Name: "mic"}},
		Captures: []goroom.CaptureJSON{
			{Time: 0.015, Gain: -6, Bounces: 2, Receiver: 0},
			{Time: 0.010, Gain: 0, Bounces: 0, Receiver: 0},
			{Time: 0.020, Gain: -3, Bounces: 1, Receiver: 1},
		},
	}
}

func TestItems(t *testing.T) {
	got := items(annotations())
	require.Len(t, got, 3)

	first := got[0].(item)
	assert.Equal(t, "0.000 ms 0.00 dB", first.Title())
	assert.Equal(t, "0 reflections at mic", first.Description())

	second := got[1].(item)
	assert.InDelta(t, 5, second.delayMs, 1e-9)
	assert.Equal(t, "2 reflections at mic", second.Description())

	// Each receiver's delays start from its own first arrival
	third := got[2].(item)
	assert.Zero(t, third.delayMs)
	assert.Equal(t, "1 reflections at receiver 1", third.Description())
	assert.Equal(t, third.Title(), third.FilterValue())
}

func TestModel(t *testing.T) {
	m := newModel(annotations())
	assert.Nil(t, m.Init())
	assert.Contains(t, m.detail(), "t=0.010000s")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.NotEmpty(t, updated.View())

	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptyModel(t *testing.T) {
	m := newModel(goroom.AnnotationsJSON{})
	assert.Empty(t, m.detail())
}
