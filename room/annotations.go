package room

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fogleman/pt/pt"
)

// JSON schema types
type PointJSON struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Size float64 `json:"size,omitempty"`
	Name string  `json:"name,omitempty"`
}

type CaptureJSON struct {
	Point     PointJSON `json:"point"`
	Time      float64   `json:"time"`
	Intensity float64   `json:"intensity"`
	Gain      float64   `json:"gain"` // stored in dB
	Receiver  int       `json:"receiver"`
	Bounces   int       `json:"bounces"`
}

type ZoneJSON struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Z            float64 `json:"z"`
	Radius       float64 `json:"radius"`
	Name         string  `json:"name,omitempty"`
	Color        string  `json:"color,omitempty"`
	Transparency float64 `json:"transparency,omitempty"`
}

type AnnotationsJSON struct {
	Points   []PointJSON   `json:"points,omitempty"`
	Captures []CaptureJSON `json:"captures,omitempty"`
	Zones    []ZoneJSON    `json:"zones,omitempty"`
}

// Conversion functions
func VectorToJSON(v pt.Vector) PointJSON {
	return PointJSON{
		X:    v.X,
		Y:    v.Y,
		Z:    v.Z,
		Size: 1.0,
	}
}

func CaptureToJSON(c Capture) CaptureJSON {
	return CaptureJSON{
		Point:     VectorToJSON(c.Hit.Point),
		Time:      c.Hit.Time,
		Intensity: c.Intensity,
		Gain:      toDB(c.Intensity),
		Receiver:  c.Receiver,
		Bounces:   c.Bounces,
	}
}

func ReceiverToJSON(r Receiver) ZoneJSON {
	return ZoneJSON{
		X:            r.Geometry.Origin.X,
		Y:            r.Geometry.Origin.Y,
		Z:            r.Geometry.Origin.Z,
		Radius:       r.Geometry.Radius,
		Name:         r.Name,
		Color:        "#FF0000",
		Transparency: 0.5,
	}
}

// Annotations collects emitters as points, receivers as zones and every capture
func Annotations(s *Scene, captures []Capture) AnnotationsJSON {
	container := AnnotationsJSON{
		Points:   make([]PointJSON, 0, len(s.Emitters())),
		Captures: make([]CaptureJSON, 0, len(captures)),
		Zones:    make([]ZoneJSON, 0, len(s.Receivers())),
	}
	for i, e := range s.Emitters() {
		p := VectorToJSON(e.Origin)
		p.Name = fmt.Sprintf("emitter_%d", i)
		container.Points = append(container.Points, p)
	}
	for _, r := range s.Receivers() {
		container.Zones = append(container.Zones, ReceiverToJSON(r))
	}
	for _, c := range captures {
		container.Captures = append(container.Captures, CaptureToJSON(c))
	}
	return container
}

// SaveAnnotations writes Annotations(s, captures) to a JSON file
func SaveAnnotations(filename string, s *Scene, captures []Capture) error {
	data, err := json.MarshalIndent(Annotations(s, captures), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling annotations: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadAnnotations reads a file written by SaveAnnotations
func LoadAnnotations(filename string) (AnnotationsJSON, error) {
	var container AnnotationsJSON
	data, err := os.ReadFile(filename)
	if err != nil {
		return container, fmt.Errorf("reading annotations: %w", err)
	}
	if err := json.Unmarshal(data, &container); err != nil {
		return container, fmt.Errorf("error unmarshaling annotations: %w", err)
	}
	return container, nil
}
