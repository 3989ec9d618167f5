package export

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/RyanBlaney/sonido-fractal/analysis"
	"github.com/RyanBlaney/sonido-fractal/logging"
)

// RenderResultPNG draws the HFD and DFA series as two stacked panels, one
// line per window size, with the adaptive threshold overlaid as a dashed
// line, and writes a single PNG. This path renders what the pipeline
// already computed; no additional analysis happens here.
func RenderResultPNG(result *analysis.Result, filename string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "plot_export",
		"filename":  filename,
	})
	logger.Debug("Rendering analysis plot")

	hfdPanel, err := seriesPanel(result, "Higuchi Fractal Dimension", result.Thresholds.HFD,
		func(s *analysis.FeatureSeries) []float64 { return s.HFD },
		func(label string) string { return "HFD " + label })
	if err != nil {
		return err
	}

	dfaPanel, err := seriesPanel(result, "Detrended Fluctuation Analysis", result.Thresholds.DFA,
		func(s *analysis.FeatureSeries) []float64 { return s.DFA },
		func(label string) string { return "DFA " + label })
	if err != nil {
		return err
	}
	dfaPanel.X.Label.Text = "Time (s)"

	const width, height = 12 * vg.Inch, 10 * vg.Inch
	img := vgimg.New(width, height)
	canvases := plot.Align([][]*plot.Plot{{hfdPanel}, {dfaPanel}}, draw.Tiles{Rows: 2, Cols: 1}, draw.New(img))
	hfdPanel.Draw(canvases[0][0])
	dfaPanel.Draw(canvases[1][0])

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}

	logger.Debug("Plot saved")
	return nil
}

// seriesPanel builds one panel: a line per window size plus the threshold
func seriesPanel(result *analysis.Result, yLabel string, threshold float64,
	values func(*analysis.FeatureSeries) []float64, legend func(string) string) (*plot.Plot, error) {

	p := plot.New()
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for i := range result.Series {
		s := &result.Series[i]
		line, err := plotter.NewLine(seriesXYs(result.Time, values(s)))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s line: %w", s.Spec.Label(), err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(legend(s.Spec.Label()), line)
	}

	if len(result.Time) > 0 {
		thresholdLine, err := plotter.NewLine(plotter.XYs{
			{X: result.Time[0], Y: threshold},
			{X: result.Time[len(result.Time)-1], Y: threshold},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build threshold line: %w", err)
		}
		thresholdLine.Color = color.RGBA{R: 200, A: 255}
		thresholdLine.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(thresholdLine)
		p.Legend.Add("Threshold", thresholdLine)
	}

	p.Legend.Top = true
	return p, nil
}

func seriesXYs(timeAxis, values []float64) plotter.XYs {
	n := min(len(timeAxis), len(values))
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		xys[i].X = timeAxis[i]
		xys[i].Y = values[i]
	}
	return xys
}
