package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/user/rdplot_go/internal/parser"
)

// Names of the chart backends.
const (
	RendererGonum   = "gonum"
	RendererGoChart = "gochart"
)

// Config selects the chart backend, the image format and size, and the codecs and metrics to plot.
type Config struct {
	Renderer string  `yaml:"renderer"`
	Format   string  `yaml:"format"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Codecs   []Entry `yaml:"codecs"`
	Metrics  []Entry `yaml:"metrics"`
}

// Entry is one codec or metric: its identifier and an optional display label.
type Entry struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Default returns the built-in configuration: four codecs, five metrics, gonum PNG output.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file. Missing fields take the built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Renderer == "" {
		cfg.Renderer = RendererGonum
	}
	if cfg.Format == "" {
		cfg.Format = "png"
	}
	cfg.Format = NormalizeFormat(cfg.Format)
	if cfg.Width == 0 {
		cfg.Width = 800
	}
	if cfg.Height == 0 {
		cfg.Height = 500
	}
	if len(cfg.Codecs) == 0 {
		for _, c := range parser.DefaultCodecs {
			cfg.Codecs = append(cfg.Codecs, Entry{ID: string(c), Label: c.Label()})
		}
	}
	if len(cfg.Metrics) == 0 {
		for _, m := range parser.DefaultMetrics {
			cfg.Metrics = append(cfg.Metrics, Entry{ID: string(m), Label: m.Label()})
		}
	}
}

// NormalizeFormat lower-cases an image extension and drops a leading dot.
func NormalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// Validate checks identifiers, renderer and image settings.
func (cfg *Config) Validate() error {
	switch cfg.Renderer {
	case RendererGonum, RendererGoChart:
	default:
		return errors.Errorf("unknown renderer %q (want %s or %s)", cfg.Renderer, RendererGonum, RendererGoChart)
	}
	if cfg.Format == "" {
		return errors.New("format is required")
	}
	if !supportedFormats[cfg.Renderer][cfg.Format] {
		return errors.Errorf("renderer %s cannot write %q images", cfg.Renderer, cfg.Format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Errorf("width and height must be positive, got %gx%g", cfg.Width, cfg.Height)
	}
	if err := validateEntries("codec", cfg.Codecs); err != nil {
		return err
	}
	if err := validateEntries("metric", cfg.Metrics); err != nil {
		return err
	}
	for _, m := range cfg.Metrics {
		if m.ID == parser.RateColumn {
			return errors.Errorf("metric %q clashes with the rate column", m.ID)
		}
	}
	return nil
}

// supportedFormats lists the extensions each backend encodes for real.
var supportedFormats = map[string]map[string]bool{
	RendererGonum: {
		"png": true, "jpg": true, "jpeg": true, "svg": true, "pdf": true,
		"eps": true, "tif": true, "tiff": true,
	},
	RendererGoChart: {"png": true, "svg": true},
}

func validateEntries(kind string, entries []Entry) error {
	if len(entries) == 0 {
		return errors.Errorf("no %ss defined", kind)
	}
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			return errors.Errorf("%s %d: id is required", kind, i)
		}
		if seen[e.ID] {
			return errors.Errorf("%s %q defined twice", kind, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// CodecIDs returns the configured codecs in order.
func (cfg *Config) CodecIDs() []parser.Codec {
	out := make([]parser.Codec, len(cfg.Codecs))
	for i, e := range cfg.Codecs {
		out[i] = parser.Codec(e.ID)
	}
	return out
}

// MetricIDs returns the configured metrics in order.
func (cfg *Config) MetricIDs() []parser.Metric {
	out := make([]parser.Metric, len(cfg.Metrics))
	for i, e := range cfg.Metrics {
		out[i] = parser.Metric(e.ID)
	}
	return out
}

// Labels returns the display-label overrides carried by the config.
func (cfg *Config) Labels() parser.Labels {
	l := parser.Labels{
		Codecs:  make(map[parser.Codec]string, len(cfg.Codecs)),
		Metrics: make(map[parser.Metric]string, len(cfg.Metrics)),
	}
	for _, e := range cfg.Codecs {
		if e.Label != "" {
			l.Codecs[parser.Codec(e.ID)] = e.Label
		}
	}
	for _, e := range cfg.Metrics {
		if e.Label != "" {
			l.Metrics[parser.Metric(e.ID)] = e.Label
		}
	}
	return l
}

// EmbeddableInPDF reports whether the image format can be placed in the PDF report.
func (cfg *Config) EmbeddableInPDF() bool {
	switch cfg.Format {
	case "png", "jpg", "jpeg":
		return true
	}
	return false
}
