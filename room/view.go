package room

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
)

// View renders a planar section through a scene
type View struct {
	Scene *Scene
	// Capture points to mark, optional
	Captures []Capture
	XSize    int
	YSize    int
	Plane    Plane
	// These cache the values needed to scale and translate from the scene to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (view View) project(v pt.Vector) Point2D {
	return To2D(view.Plane.Project(v))
}

// BoundingBox returns the extent of the section in plane coordinates, covering emitters,
// receivers and the reflector outlines.
func (view View) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	points := Path2D{}
	for _, e := range view.Scene.Emitters() {
		points = append(points, view.project(e.Origin))
	}
	for _, r := range view.Scene.Receivers() {
		c := view.project(r.Geometry.Origin)
		rad := r.Geometry.Radius
		points = append(points, c.Translate(-rad, -rad), c.Translate(rad, rad))
	}
	for _, path := range view.Plane.SectionPaths(view.Scene.Reflectors()) {
		points = append(points, path...)
	}
	return points.BoundingBox()
}

func (view *View) computeScaleAndTranslation() {
	XMin, XMax, YMin, YMax := view.BoundingBox()
	view.xTranslate = -XMin
	view.yTranslate = -YMin
	XScale := float64(view.XSize) / (XMax - XMin)
	YScale := float64(view.YSize) / (YMax - YMin)
	view.scale = math.Min(XScale, YScale)
}

func (view *View) translateAndScale(p Point2D) Point2D {
	if view.scale == 0 {
		view.computeScaleAndTranslation()
	}
	return p.Translate(view.xTranslate, view.yTranslate).Scale(view.scale)
}

// Render draws the section: reflector outlines in black, emitters in blue, receivers as red
// circles and capture points in green.
func (view *View) Render() (image.Image, error) {
	if view.XSize <= 0 || view.YSize <= 0 {
		return nil, fmt.Errorf("invalid view size %dx%d", view.XSize, view.YSize)
	}
	view.computeScaleAndTranslation()
	if !(view.scale > 0) || math.IsInf(view.scale, 1) {
		return nil, fmt.Errorf("scene has no extent in the view plane")
	}

	c := gg.NewContext(view.XSize, view.YSize)
	c.SetRGB(1, 1, 1)
	c.Clear()

	c.SetRGB(0, 0, 0)
	c.SetLineWidth(2)
	for _, lines := range view.Plane.SectionPaths(view.Scene.Reflectors()) {
		for i := 0; i < len(lines)-1; i++ {
			p1 := view.translateAndScale(lines[i])
			p2 := view.translateAndScale(lines[i+1])
			c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		}
	}
	c.Stroke()

	c.SetRGB(0, 0, 1)
	for _, e := range view.Scene.Emitters() {
		p := view.translateAndScale(view.project(e.Origin))
		c.DrawCircle(p.X, p.Y, 3)
	}
	c.Fill()

	c.SetRGB(1, 0, 0)
	c.SetLineWidth(1)
	for _, r := range view.Scene.Receivers() {
		p := view.translateAndScale(view.project(r.Geometry.Origin))
		c.DrawCircle(p.X, p.Y, r.Geometry.Radius*view.scale)
	}
	c.Stroke()

	c.SetRGB(0, 0.6, 0)
	for _, capture := range view.Captures {
		p := view.translateAndScale(view.project(capture.Hit.Point))
		c.DrawCircle(p.X, p.Y, 1)
	}
	c.Fill()

	return c.Image(), nil
}

// SavePNG renders the section to a PNG file
func (view *View) SavePNG(path string) error {
	img, err := view.Render()
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving section view: %w", err)
	}
	return nil
}
