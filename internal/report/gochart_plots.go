package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const legendMargin = 5

var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
}

// GoChartRenderer draws charts with go-chart. Width and Height are in pixels.
type GoChartRenderer struct {
	Width  int
	Height int
}

func (r *GoChartRenderer) NewChart() Chart {
	return &goChart{
		ch: chart.Chart{
			Width:      r.Width,
			Height:     r.Height,
			Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		},
	}
}

type goChart struct {
	ch          chart.Chart
	legendTitle string
}

// lineDotStyle draws both the connecting line and a dot at every point.
func lineDotStyle(index int) chart.Style {
	col := seriesColors[index%len(seriesColors)]
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    3,
		DotColor:    col,
	}
}

func (c *goChart) AddSeries(x, y []float64, label string) error {
	if err := checkSeries(x, y, label); err != nil {
		return err
	}
	// go-chart cannot derive an axis range from fewer than two points.
	if len(x) < 2 {
		return fmt.Errorf("series %q has %d points, go-chart needs at least 2", label, len(x))
	}
	c.ch.Series = append(c.ch.Series, chart.ContinuousSeries{
		Name:    label,
		XValues: append([]float64(nil), x...),
		YValues: append([]float64(nil), y...),
		Style:   lineDotStyle(len(c.ch.Series)),
	})
	return nil
}

func (c *goChart) SetAxisTitles(x, y string) {
	c.ch.XAxis.Name = x
	c.ch.YAxis.Name = y
}

func (c *goChart) SetLegendTitle(title string) {
	c.legendTitle = title
}

func (c *goChart) SetTitle(title string) {
	c.ch.Title = title
}

// legendWithTitle writes the title in the top-left corner of the canvas and
// the standard legend box just below it.
func legendWithTitle(c *chart.Chart, title string) chart.Renderable {
	legend := chart.Legend(c)
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if title != "" {
			chart.Style{FontSize: 8, FontColor: chart.ColorBlack}.InheritFrom(defaults).WriteTextOptionsToRenderer(r)
			tb := r.MeasureText(title)
			r.Text(title, cb.Left+legendMargin, cb.Top+legendMargin+tb.Height())
			cb.Top += tb.Height() + legendMargin
		}
		legend(r, cb, defaults)
	}
}

// Export renders SVG for a .svg path and PNG otherwise.
func (c *goChart) Export(path string) error {
	provider := chart.PNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		provider = chart.SVG
	}
	ch := c.ch
	ch.Elements = []chart.Renderable{legendWithTitle(&ch, c.legendTitle)}

	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return fmt.Errorf("go-chart render: %v", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
