package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var plotColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, // Blue
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, // Red
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, // Green
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}, // Orange
	color.RGBA{R: 128, G: 0, B: 128, A: 255},      // Purple
	color.RGBA{G: 128, B: 128, A: 255},            // Teal
}

var plotGlyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.PyramidGlyph{},
	draw.RingGlyph{},
	draw.CrossGlyph{},
}

// GonumRenderer draws charts with gonum/plot. Width and Height are in points.
type GonumRenderer struct {
	Width  float64
	Height float64
}

func (r *GonumRenderer) NewChart() Chart {
	p := plot.New()
	p.Add(plotter.NewGrid())
	p.Legend.Top = false
	p.Legend.Left = false
	p.Legend.XOffs = -vg.Points(10)
	p.Legend.YOffs = vg.Points(10)
	return &gonumChart{
		p:      p,
		width:  vg.Points(r.Width),
		height: vg.Points(r.Height),
	}
}

type gonumLegendEntry struct {
	label  string
	thumbs []plot.Thumbnailer
}

type gonumChart struct {
	p           *plot.Plot
	width       vg.Length
	height      vg.Length
	legendTitle string
	entries     []gonumLegendEntry
	legendDone  bool
}

// AddSeries draws the points joined by a line, in the next color and glyph of the cycle.
func (c *gonumChart) AddSeries(x, y []float64, label string) error {
	if err := checkSeries(x, y, label); err != nil {
		return err
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("failed to create line for %s: %v", label, err)
	}
	n := len(c.entries)
	line.Color = plotColors[n%len(plotColors)]
	line.LineStyle.Width = vg.Points(1.5)
	points.Color = plotColors[n%len(plotColors)]
	points.Shape = plotGlyphs[n%len(plotGlyphs)]
	points.Radius = vg.Points(3)

	c.p.Add(line, points)
	c.entries = append(c.entries, gonumLegendEntry{label: label, thumbs: []plot.Thumbnailer{line, points}})
	return nil
}

func (c *gonumChart) SetAxisTitles(x, y string) {
	c.p.X.Label.Text = x
	c.p.Y.Label.Text = y
}

func (c *gonumChart) SetLegendTitle(title string) {
	c.legendTitle = title
}

func (c *gonumChart) SetTitle(title string) {
	c.p.Title.Text = title
}

// buildLegend fills the legend once; gonum has no legend title, so the
// title is a text-only first entry.
func (c *gonumChart) buildLegend() {
	if c.legendDone {
		return
	}
	if c.legendTitle != "" {
		c.p.Legend.Add(c.legendTitle)
	}
	for _, e := range c.entries {
		c.p.Legend.Add(e.label, e.thumbs...)
	}
	c.legendDone = true
}

// Export saves the plot; the image format follows the file extension.
func (c *gonumChart) Export(path string) error {
	c.buildLegend()
	if err := c.p.Save(c.width, c.height, path); err != nil {
		return fmt.Errorf("failed to save plot: %v", err)
	}
	return nil
}
