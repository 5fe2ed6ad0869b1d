// Package interact is a terminal browser for the captures of a finished simulation.
package interact

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goroom "github.com/jdginn/go-sound-scene/room"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2)
)

type item struct {
	capture goroom.CaptureJSON
	// Delay after the first arrival at the same receiver
	delayMs  float64
	receiver string
}

func (i item) Title() string {
	return fmt.Sprintf("%.3f ms %.2f dB", i.delayMs, i.capture.Gain)
}

func (i item) Description() string {
	return fmt.Sprintf("%d reflections at %s", i.capture.Bounces, i.receiver)
}

func (i item) FilterValue() string {
	return i.Title()
}

type model struct {
	list list.Model
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// detail describes where the selected capture landed
func (m model) detail() string {
	selected, ok := m.list.SelectedItem().(item)
	if !ok {
		return ""
	}
	p := selected.capture.Point
	return fmt.Sprintf("t=%.6fs at (%.3f, %.3f, %.3f) intensity %.3g",
		selected.capture.Time, p.X, p.Y, p.Z, selected.capture.Intensity)
}

func (m model) View() string {
	return docStyle.Render(m.list.View() + "\n" + detailStyle.Render(m.detail()))
}

// items lists captures in arrival order. Delays are measured from the first arrival at each
// receiver.
func items(annotations goroom.AnnotationsJSON) []list.Item {
	captures := slices.Clone(annotations.Captures)
	slices.SortStableFunc(captures, func(a, b goroom.CaptureJSON) int {
		return cmp.Compare(a.Time, b.Time)
	})

	first := map[int]float64{}
	result := make([]list.Item, len(captures))
	for i, c := range captures {
		if _, ok := first[c.Receiver]; !ok {
			first[c.Receiver] = c.Time
		}
		name := fmt.Sprintf("receiver %d", c.Receiver)
		if c.Receiver < len(annotations.Zones) && annotations.Zones[c.Receiver].Name != "" {
			name = annotations.Zones[c.Receiver].Name
		}
		result[i] = item{
			capture:  c,
			delayMs:  (c.Time - first[c.Receiver]) * 1000,
			receiver: name,
		}
	}
	return result
}

func newModel(annotations goroom.AnnotationsJSON) model {
	m := model{list: list.New(items(annotations), list.NewDefaultDelegate(), 0, 0)}
	m.list.Title = "Captures"
	return m
}

// Interact runs the browser until the user quits
func Interact(annotations goroom.AnnotationsJSON) error {
	p := tea.NewProgram(newModel(annotations), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running capture browser: %w", err)
	}
	return nil
}
