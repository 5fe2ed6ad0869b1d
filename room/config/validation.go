package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jdginn/go-sound-scene/room"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateUnitVector(field string, vec [3]float64) []ValidationError {
	length := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1] + vec[2]*vec[2])
	if math.Abs(length-1.0) > 1e-6 {
		return []ValidationError{{
			Field:   field,
			Message: "must be a unit vector",
		}}
	}
	return nil
}

func validateAngleRange(field string, angle float64) []ValidationError {
	if angle < 0 || angle > 180 {
		return []ValidationError{{
			Field:   field,
			Message: "off-axis angle must be between 0 and 180 degrees",
		}}
	}
	return nil
}

func validateDirectivity(field string, directivity map[float64]float64) []ValidationError {
	var errors []ValidationError
	for angle, gain := range directivity {
		errors = append(errors, validateAngleRange(field, angle)...)
		if gain > 0 {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("gain at %v degrees must not be positive", angle),
			})
		}
	}
	return errors
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// New function to format validation errors nicely
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	// Group errors by category
	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}

	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	// Print errors by category
	for _, category := range names {
		categoryErrors := categories[category]
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categoryErrors {
			// Remove category prefix from field for cleaner display
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *ExperimentConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Materials.Validate()...)
	errors = append(errors, c.SurfaceAssignments.Validate(&c.Materials)...)
	errors = append(errors, c.Input.Validate()...)
	errors = append(errors, c.validateSources()...)
	errors = append(errors, c.Simulation.Validate()...)
	errors = append(errors, c.Output.Validate()...)
	return errors
}

func (m *Materials) Validate() []ValidationError {
	var errors []ValidationError

	if m.Inline == nil && m.FromFile == "" {
		errors = append(errors, ValidationError{
			Field:   "materials",
			Message: "either inline or from_file must be specified",
		})
		return errors
	}

	for name, material := range m.Inline {
		errors = append(errors, validateInRange(fmt.Sprintf("materials.inline.%s.absorption", name), material.Absorption, 0, 1)...)
	}

	return errors
}

func (sa *SurfaceAssignments) Validate(materials *Materials) []ValidationError {
	var errors []ValidationError

	if sa.Inline == nil && sa.FromFile == "" {
		errors = append(errors, ValidationError{
			Field:   "surface_assignments",
			Message: "either inline or from_file must be specified",
		})
		return errors
	}

	if sa.Inline != nil {
		_, hasDefault := sa.Inline[room.DEFAULT_SURFACE]
		if !hasDefault {
			errors = append(errors, ValidationError{
				Field:   "surface_assignments.inline",
				Message: "must include a default material",
			})
		}

		for surface, material := range sa.Inline {
			if !materials.HasMaterial(material) {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("surface_assignments.inline.%s", surface),
					Message: fmt.Sprintf("references undefined material '%s'", material),
				})
			}
		}
	}

	return errors
}

func (i *Input) Validate() []ValidationError {
	var errors []ValidationError

	if i.Mesh.Path == "" && len(i.Polygons) == 0 && len(i.Boxes) == 0 {
		errors = append(errors, ValidationError{
			Field:   "input",
			Message: "a mesh path, polygons or boxes are required",
		})
	}

	for n, p := range i.Polygons {
		field := fmt.Sprintf("input.polygons.%d", n)
		if p.Name == "" {
			errors = append(errors, ValidationError{Field: field + ".name", Message: "name is required"})
		}
		if len(p.Points) < 3 {
			errors = append(errors, ValidationError{
				Field:   field + ".points",
				Message: fmt.Sprintf("need at least 3 points, got %d", len(p.Points)),
			})
		}
	}

	seen := map[string]bool{}
	for _, name := range i.SurfaceNames() {
		if name != "" && seen[name] {
			errors = append(errors, ValidationError{
				Field:   "input",
				Message: fmt.Sprintf("surface name '%s' is used more than once", name),
			})
		}
		seen[name] = true
	}

	for n, b := range i.Boxes {
		field := fmt.Sprintf("input.boxes.%d", n)
		if b.Name == "" {
			errors = append(errors, ValidationError{Field: field + ".name", Message: "name is required"})
		}
		for axis := 0; axis < 3; axis++ {
			if b.Max[axis] <= b.Min[axis] {
				errors = append(errors, ValidationError{
					Field:   field,
					Message: "max must exceed min on every axis",
				})
				break
			}
		}
	}

	return errors
}

func (c *ExperimentConfig) validateSources() []ValidationError {
	var errors []ValidationError

	if len(c.Emitters) == 0 && c.ListeningTriangle == nil {
		errors = append(errors, ValidationError{
			Field:   "emitters",
			Message: "at least one emitter or a listening triangle is required",
		})
	}
	if len(c.Receivers) == 0 && c.ListeningTriangle == nil {
		errors = append(errors, ValidationError{
			Field:   "receivers",
			Message: "at least one receiver or a listening triangle is required",
		})
	}

	for n, e := range c.Emitters {
		field := fmt.Sprintf("emitters.%d", n)
		errors = append(errors, validatePositive(field+".sounds", float64(e.Sounds))...)
		if len(e.Directivity) > 0 {
			errors = append(errors, validateUnitVector(field+".axis", e.Axis)...)
			errors = append(errors, validateDirectivity(field+".directivity", e.Directivity)...)
		}
	}

	for n, r := range c.Receivers {
		errors = append(errors, validatePositive(fmt.Sprintf("receivers.%d.radius", n), r.Radius)...)
	}

	if lt := c.ListeningTriangle; lt != nil {
		errors = append(errors, validatePositive("listening_triangle.distance_from_front", lt.DistanceFromFront)...)
		errors = append(errors, validatePositive("listening_triangle.distance_from_center", lt.DistanceFromCenter)...)
		errors = append(errors, validatePositive("listening_triangle.source_height", lt.SourceHeight)...)
		errors = append(errors, validatePositive("listening_triangle.listen_height", lt.ListenHeight)...)
		errors = append(errors, validatePositive("listening_triangle.sounds", float64(lt.Sounds))...)
		errors = append(errors, validatePositive("listening_triangle.receiver_radius", lt.ReceiverRadius)...)
		errors = append(errors, validateDirectivity("listening_triangle.directivity", lt.Directivity)...)
	}

	return errors
}

func (s *Simulation) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateNonNegative("simulation.workers", float64(s.Workers))...)
	errors = append(errors, validateNonNegative("simulation.max_rounds", float64(s.MaxRounds))...)

	return errors
}

func (o *Output) Validate() []ValidationError {
	var errors []ValidationError

	if o.Plot {
		errors = append(errors, validatePositive("output.bin_ms", o.BinMS)...)
	}
	errors = append(errors, validateNonNegative("output.window_ms", o.WindowMS)...)

	if v := o.SectionView; v != nil {
		errors = append(errors, validateUnitVector("output.section_view.normal", v.Normal)...)
		errors = append(errors, validatePositive("output.section_view.width", float64(v.Width))...)
		errors = append(errors, validatePositive("output.section_view.height", float64(v.Height))...)
	}

	return errors
}
