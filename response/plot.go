package response

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Energy below this level relative to the strongest bin is not drawn
const PLOT_FLOOR_DB = -80.0

// PlotEchogram saves a bar chart of binned energy, in dB above PLOT_FLOOR_DB relative to the
// strongest bin. The image format follows the file extension.
func PlotEchogram(path string, energy []float64, binWidth float64, X, Y int) error {
	peak := 0.0
	for _, e := range energy {
		peak = math.Max(peak, e)
	}
	if peak <= 0 {
		return fmt.Errorf("echogram has no energy to plot")
	}

	values := make(plotter.Values, len(energy))
	for i, e := range energy {
		if e <= 0 {
			continue
		}
		values[i] = math.Max(0, 10*math.Log10(e/peak)-PLOT_FLOOR_DB)
	}

	p := plot.New()
	p.Title.Text = "Echogram"
	p.X.Label.Text = fmt.Sprintf("Bin (%g ms)", binWidth*1000)
	p.Y.Label.Text = fmt.Sprintf("Level above %g dB", PLOT_FLOOR_DB)

	bars, err := plotter.NewBarChart(values, vg.Points(1))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	if err := p.Save(vg.Length(X), vg.Length(Y), path); err != nil {
		return fmt.Errorf("saving echogram: %w", err)
	}
	return nil
}
