package report

import (
	"fmt"
	"math"

	"github.com/user/rdplot_go/internal/config"
)

// Renderer creates empty charts. Backends decide marker style, palette and image encoding.
type Renderer interface {
	NewChart() Chart
}

// Chart is a single line-and-marker chart under construction.
type Chart interface {
	// AddSeries appends one labeled series; x and y must have the same length.
	AddSeries(x, y []float64, label string) error
	SetAxisTitles(x, y string)
	SetLegendTitle(title string)
	SetTitle(title string)
	// Export encodes the chart and writes it to path.
	Export(path string) error
}

// NewRenderer returns the backend named in the config, sized from it.
func NewRenderer(cfg *config.Config) (Renderer, error) {
	switch cfg.Renderer {
	case config.RendererGonum:
		return &GonumRenderer{Width: cfg.Width, Height: cfg.Height}, nil
	case config.RendererGoChart:
		return &GoChartRenderer{Width: int(cfg.Width), Height: int(cfg.Height)}, nil
	}
	return nil, fmt.Errorf("unknown renderer: %s", cfg.Renderer)
}

// checkSeries rejects unaligned or non-finite points before a backend sees them.
func checkSeries(x, y []float64, label string) error {
	if len(x) != len(y) {
		return fmt.Errorf("series %q has %d x values and %d y values", label, len(x), len(y))
	}
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return fmt.Errorf("series %q point %d (%g, %g) is not finite", label, i, x[i], y[i])
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
