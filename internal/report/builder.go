package report

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/rdplot_go/internal/parser"
)

const (
	XAxisTitle  = "bits per pixel"
	LegendTitle = "codec"
)

// ExportError reports that a metric's chart could not be written.
type ExportError struct {
	Metric parser.Metric
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s chart to %s: %v", e.Metric, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// RenderOptions control chart titles and output naming for RenderAll.
type RenderOptions struct {
	Title  string // defaults to the base name of the output directory
	Format string // image extension without the dot, defaults to png
	Labels parser.Labels
}

// ChartPath returns <dir>/<metric>.<format>.
func ChartPath(dir string, metric parser.Metric, format string) string {
	return filepath.Join(dir, string(metric)+"."+format)
}

// BuildChart creates the comparison chart for one metric: one series per codec, in set order.
func BuildChart(r Renderer, set *parser.MeasurementSet, metric parser.Metric, title string, labels parser.Labels) (Chart, error) {
	if set == nil {
		return nil, errors.New("no measurements to plot")
	}
	ch := r.NewChart()
	for _, codec := range set.Codecs {
		series := set.Get(codec)
		if series == nil {
			return nil, errors.Errorf("codec %s was not loaded", codec)
		}
		scores, ok := series.Scores[metric]
		if !ok {
			return nil, errors.Errorf("codec %s has no %s scores", codec, metric)
		}
		if err := ch.AddSeries(series.Rates, scores, labels.Codec(codec)); err != nil {
			return nil, errors.Wrapf(err, "failed to add %s series to %s chart", codec, metric)
		}
	}
	ch.SetAxisTitles(XAxisTitle, labels.Metric(metric))
	ch.SetLegendTitle(LegendTitle)
	ch.SetTitle(title)
	return ch, nil
}

// RenderAll builds one chart per metric, then exports them into dir in metric order.
// Every chart is built before the first file is written, so a series the
// backend rejects leaves no images behind. It returns the written paths.
func RenderAll(r Renderer, set *parser.MeasurementSet, dir string, opts RenderOptions) ([]string, error) {
	title := opts.Title
	if title == "" {
		title = filepath.Base(filepath.Clean(dir))
	}
	format := opts.Format
	if format == "" {
		format = "png"
	}

	charts := make([]Chart, 0, len(set.Metrics))
	for _, metric := range set.Metrics {
		logrus.Infof("Plot: %s", metric)
		ch, err := BuildChart(r, set, metric, title, opts.Labels)
		if err != nil {
			return nil, err
		}
		charts = append(charts, ch)
	}

	written := make([]string, 0, len(charts))
	for i, metric := range set.Metrics {
		path := ChartPath(dir, metric, format)
		if err := charts[i].Export(path); err != nil {
			return written, &ExportError{Metric: metric, Path: path, Err: err}
		}
		logrus.Debugf("Wrote %s", path)
		written = append(written, path)
	}
	return written, nil
}
