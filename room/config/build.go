package config

import (
	"fmt"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-sound-scene/room"
)

func vec(a [3]float64) pt.Vector {
	return room.V(a[0], a[1], a[2])
}

// SurfaceNames lists every named surface of the inline geometry
func (i *Input) SurfaceNames() []string {
	var names []string
	for _, p := range i.Polygons {
		names = append(names, p.Name)
	}
	for _, b := range i.Boxes {
		names = append(names, b.Name)
	}
	return names
}

// Reflectance maps each assigned surface name to the reflectance of its material, which is
// one minus the absorption.
func (c *ExperimentConfig) Reflectance() (map[string]float64, error) {
	reflectance := make(map[string]float64, len(c.SurfaceAssignments.Inline))
	for surface, material := range c.SurfaceAssignments.Inline {
		m, ok := c.Materials.Inline[material]
		if !ok {
			return nil, fmt.Errorf("surface %q references undefined material %q", surface, material)
		}
		reflectance[surface] = 1 - m.Absorption
	}
	return reflectance, nil
}

// Create converts the config into the room package's listening triangle
func (lt *ListeningTriangle) Create() room.ListeningTriangle {
	return room.ListeningTriangle{
		ReferencePosition: vec(lt.ReferencePosition),
		DistFromFront:     lt.DistanceFromFront,
		DistFromCenter:    lt.DistanceFromCenter,
		SourceHeight:      lt.SourceHeight,
		ListenHeight:      lt.ListenHeight,
	}
}

func directivity(gains map[float64]float64) *room.Directivity {
	if len(gains) == 0 {
		return nil
	}
	return room.NewDirectivity(gains)
}

// BuildScene assembles the reflectors, emitters and receivers described by the config. The
// config should be merged and validated first.
func (c *ExperimentConfig) BuildScene() (*room.Scene, error) {
	reflectance, err := c.Reflectance()
	if err != nil {
		return nil, err
	}
	lookup := func(name string) float64 {
		if r, ok := reflectance[name]; ok {
			return r
		}
		return reflectance[room.DEFAULT_SURFACE]
	}

	scene := room.NewScene()

	if c.Input.Mesh.Path != "" {
		reflectors, err := room.LoadReflectors3MF(c.Input.Mesh.Path, reflectance)
		if err != nil {
			return nil, fmt.Errorf("loading mesh: %w", err)
		}
		for _, r := range reflectors {
			scene.AddObject(r)
		}
	}

	for _, p := range c.Input.Polygons {
		points := make([]pt.Vector, len(p.Points))
		for i, point := range p.Points {
			points[i] = vec(point)
		}
		r, err := room.NewReflectorFromFan(p.Name, points, lookup(p.Name))
		if err != nil {
			return nil, err
		}
		scene.AddObject(r)
	}

	for _, b := range c.Input.Boxes {
		scene.AddObject(room.NewBox(b.Name, vec(b.Min), vec(b.Max), lookup(b.Name)))
	}

	for _, e := range c.Emitters {
		scene.AddEmitter(room.Emitter{
			Origin:        vec(e.Position),
			SoundsPerTick: e.Sounds,
			Axis:          vec(e.Axis),
			Directivity:   directivity(e.Directivity),
		})
	}

	for i, r := range c.Receivers {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("receiver_%d", i)
		}
		scene.AddObject(room.Receiver{
			Name:     name,
			Geometry: room.Sphere{Origin: vec(r.Position), Radius: r.Radius},
		})
	}

	if c.ListeningTriangle != nil {
		lt := c.ListeningTriangle.Create()
		for _, e := range lt.Emitters(c.ListeningTriangle.Sounds, directivity(c.ListeningTriangle.Directivity)) {
			scene.AddEmitter(e)
		}
		scene.AddObject(lt.Receiver(c.ListeningTriangle.ReceiverRadius))
	}

	if len(scene.Receivers()) == 0 {
		return nil, room.ErrNoReceivers
	}

	return scene, nil
}
