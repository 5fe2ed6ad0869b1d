package config

// ExperimentConfig represents the complete configuration for an acoustic scene simulation
type ExperimentConfig struct {
	Metadata           Metadata           `yaml:"metadata"`
	Input              Input              `yaml:"input"`
	Materials          Materials          `yaml:"materials"`
	SurfaceAssignments SurfaceAssignments `yaml:"surface_assignments"`
	Emitters           []Emitter          `yaml:"emitters,omitempty"`
	Receivers          []Receiver         `yaml:"receivers,omitempty"`
	ListeningTriangle  *ListeningTriangle `yaml:"listening_triangle,omitempty"`
	Simulation         Simulation         `yaml:"simulation"`
	Output             Output             `yaml:"output"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

// Input describes the reflective geometry. Every surface is named; its material comes from
// the surface assignments.
type Input struct {
	Mesh struct {
		Path string `yaml:"path,omitempty"`
	} `yaml:"mesh"`
	Polygons []Polygon `yaml:"polygons,omitempty"`
	Boxes    []Box     `yaml:"boxes,omitempty"`
}

// Polygon is a planar outline, fanned into triangles from its first point
type Polygon struct {
	Name   string       `yaml:"name"`
	Points [][3]float64 `yaml:"points"`
}

// Box is an axis-aligned closed box of six walls
type Box struct {
	Name string     `yaml:"name"`
	Min  [3]float64 `yaml:"min"`
	Max  [3]float64 `yaml:"max"`
}

type Materials struct {
	Inline   map[string]Material `yaml:"inline,omitempty"`
	FromFile string              `yaml:"from_file,omitempty"`
}

type Material struct {
	Absorption float64 `yaml:"absorption"`
}

type SurfaceAssignments struct {
	Inline   map[string]string `yaml:"inline,omitempty"` // surface name -> material name
	FromFile string            `yaml:"from_file,omitempty"`
}

type Emitter struct {
	Position [3]float64 `yaml:"position"`
	Sounds   int        `yaml:"sounds"`
	// Optional; both are needed for a directional emitter
	Axis        [3]float64          `yaml:"axis,omitempty"`
	Directivity map[float64]float64 `yaml:"directivity,omitempty"` // angle -> attenuation
}

type Receiver struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Radius   float64    `yaml:"radius"`
}

// ListeningTriangle adds a stereo pair of emitters and a receiver at the listening position
type ListeningTriangle struct {
	ReferencePosition  [3]float64          `yaml:"reference_position,omitempty"`
	DistanceFromFront  float64             `yaml:"distance_from_front"`
	DistanceFromCenter float64             `yaml:"distance_from_center"`
	SourceHeight       float64             `yaml:"source_height"`
	ListenHeight       float64             `yaml:"listen_height"`
	Sounds             int                 `yaml:"sounds"`
	ReceiverRadius     float64             `yaml:"receiver_radius"`
	Directivity        map[float64]float64 `yaml:"directivity,omitempty"`
}

type Simulation struct {
	Seed      int64 `yaml:"seed"`
	Workers   int   `yaml:"workers"`
	MaxRounds int   `yaml:"max_rounds"`
}

type Output struct {
	CSV         bool         `yaml:"csv"`
	Plot        bool         `yaml:"plot"`
	STL         bool         `yaml:"stl"`
	Annotations bool         `yaml:"annotations"`
	SectionView *SectionView `yaml:"section_view,omitempty"`
	BinMS       float64      `yaml:"bin_ms"`
	WindowMS    float64      `yaml:"window_ms"`
}

type SectionView struct {
	Point  [3]float64 `yaml:"point"`
	Normal [3]float64 `yaml:"normal"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
}
