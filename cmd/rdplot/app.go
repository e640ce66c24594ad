package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/user/rdplot_go/internal/config"
	"github.com/user/rdplot_go/internal/parser"
	"github.com/user/rdplot_go/internal/report"
)

// App runs the load-all then render-all pipeline for one measurement directory.
type App struct {
	cfg *config.Config
	out io.Writer // destination of the --dump tables
}

// NewApp creates an App for a validated config.
func NewApp(cfg *config.Config, out io.Writer) *App {
	return &App{cfg: cfg, out: out}
}

// RunOptions are the per-invocation inputs that do not live in the config.
type RunOptions struct {
	Dir     string
	Title   string
	PDFPath string
	Dump    bool
}

// Run loads every codec before building any chart, so a missing or malformed
// file never leaves images behind.
func (a *App) Run(opts RunOptions) error {
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return errors.Wrapf(err, "measurement directory %s", opts.Dir)
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", opts.Dir)
	}
	if opts.PDFPath != "" && !a.cfg.EmbeddableInPDF() {
		return errors.Errorf("PDF report needs png or jpg charts, format is %s", a.cfg.Format)
	}
	renderer, err := report.NewRenderer(a.cfg)
	if err != nil {
		return err
	}

	codecs, metrics, labels := a.cfg.CodecIDs(), a.cfg.MetricIDs(), a.cfg.Labels()
	logrus.Infof("Parsing %d codecs from %s", len(codecs), opts.Dir)
	set, err := parser.LoadMeasurementSet(opts.Dir, codecs, metrics)
	if err != nil {
		return err
	}
	for _, c := range set.Codecs {
		n := set.Get(c).Len()
		if n == 0 {
			logrus.Warnf("Codec %s has no measurement rows", c)
		}
		logrus.Infof("Parsed %d rows for %s", n, labels.Codec(c))
	}
	if opts.Dump {
		report.WriteMeasurementTable(a.out, set, labels)
	}

	title := opts.Title
	if title == "" {
		title = filepath.Base(filepath.Clean(opts.Dir))
	}
	logrus.Infof("Generating plots with %s renderer...", a.cfg.Renderer)
	paths, err := report.RenderAll(renderer, set, opts.Dir, report.RenderOptions{
		Title:  title,
		Format: a.cfg.Format,
		Labels: labels,
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		logrus.Infof("Wrote %s", p)
	}

	if opts.PDFPath != "" {
		logrus.Infof("Generating PDF: %s...", opts.PDFPath)
		chartPaths := make(map[parser.Metric]string, len(paths))
		for i, m := range set.Metrics {
			chartPaths[m] = paths[i]
		}
		err := report.BuildPDFReport(opts.PDFPath, report.PDFReport{
			Title:      title,
			Set:        set,
			Labels:     labels,
			ChartPaths: chartPaths,
			Aspect:     a.cfg.Height / a.cfg.Width,
		})
		if err != nil {
			return errors.Wrap(err, "error generating PDF report")
		}
		logrus.Infof("PDF report successfully generated: %s", opts.PDFPath)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		renderer string
		format   string
		logLevel string
		opts     RunOptions
	)
	root := &cobra.Command{
		Use:   "rdplot <directory>",
		Short: "Plot rate-distortion curves of several codecs, one chart per quality metric",
		Long: "rdplot reads <directory>/<codec>.csv for every configured codec and writes\n" +
			"<directory>/<metric>.png comparing all codecs on bits per pixel.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)

			cfg := config.Default()
			if cfgFile != "" {
				if cfg, err = config.Load(cfgFile); err != nil {
					return err
				}
			}
			if renderer != "" {
				cfg.Renderer = renderer
			}
			if format != "" {
				cfg.Format = config.NormalizeFormat(format)
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid flags")
			}

			opts.Dir = args[0]
			return NewApp(cfg, cmd.OutOrStdout()).Run(opts)
		},
	}
	root.Flags().StringVar(&cfgFile, "config", "", "optional YAML config file (codecs, metrics, labels, renderer, size)")
	root.Flags().StringVar(&renderer, "renderer", "", fmt.Sprintf("chart backend: %s or %s", config.RendererGonum, config.RendererGoChart))
	root.Flags().StringVar(&format, "format", "", "image format extension, e.g. png or svg")
	root.Flags().StringVar(&opts.Title, "title", "", "chart title (default: base name of <directory>)")
	root.Flags().StringVar(&opts.PDFPath, "pdf", "", "also write a PDF report to this path")
	root.Flags().BoolVar(&opts.Dump, "dump", false, "print the loaded measurements as tables")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return root
}
