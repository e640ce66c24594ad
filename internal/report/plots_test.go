package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/user/rdplot_go/internal/config"
	"github.com/user/rdplot_go/internal/parser"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testSet() *parser.MeasurementSet {
	set := &parser.MeasurementSet{
		Codecs:  parser.DefaultCodecs,
		Metrics: parser.DefaultMetrics,
		Series:  map[parser.Codec]*parser.Series{},
	}
	for i, c := range parser.DefaultCodecs {
		s := parser.NewSeries(c, parser.DefaultMetrics)
		s.Rates = []float64{0.05, 0.10, 0.20, 0.40}
		for j, m := range parser.DefaultMetrics {
			base := float64(30 + 10*j + i)
			s.Scores[m] = []float64{base, base + 2, base + 3.5, base + 4.25}
		}
		set.Series[c] = s
	}
	return set
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestNewRenderer(t *testing.T) {
	Convey("Selecting a backend from config", t, func() {
		cfg := config.Default()
		r, err := NewRenderer(cfg)
		So(err, ShouldBeNil)
		So(r, ShouldHaveSameTypeAs, &GonumRenderer{})

		cfg.Renderer = config.RendererGoChart
		r, err = NewRenderer(cfg)
		So(err, ShouldBeNil)
		So(r.(*GoChartRenderer).Width, ShouldEqual, 800)

		cfg.Renderer = "plotly"
		_, err = NewRenderer(cfg)
		So(err, ShouldNotBeNil)
	})
}

func TestBackends(t *testing.T) {
	backends := map[string]Renderer{
		"gonum":   &GonumRenderer{Width: 600, Height: 375},
		"gochart": &GoChartRenderer{Width: 600, Height: 375},
	}
	for name, r := range backends {
		Convey("Using the "+name+" backend", t, func() {
			dir := t.TempDir()

			Convey("Rendering every metric as PNG should write non-empty images", func() {
				paths, err := RenderAll(r, testSet(), dir, RenderOptions{})
				So(err, ShouldBeNil)
				So(paths, ShouldHaveLength, len(parser.DefaultMetrics))
				for _, p := range paths {
					data := readFile(t, p)
					So(bytes.HasPrefix(data, pngMagic), ShouldBeTrue)
				}
			})

			Convey("Rendering to an SVG path should write SVG", func() {
				ch, err := BuildChart(r, testSet(), parser.MetricVMAF, "svg run", parser.Labels{})
				So(err, ShouldBeNil)
				path := filepath.Join(dir, "vmaf.svg")
				So(ch.Export(path), ShouldBeNil)
				So(string(readFile(t, path)), ShouldContainSubstring, "<svg")
			})

			Convey("Mismatched series lengths should be rejected", func() {
				ch := r.NewChart()
				err := ch.AddSeries([]float64{1, 2}, []float64{1}, "broken")
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "broken")
			})

			Convey("Non-finite points should not produce a chart", func() {
				set := testSet()
				set.Series[parser.CodecHEVCNVENC].Scores[parser.MetricVMAFNeg][2] = math.NaN()
				paths, err := RenderAll(r, set, dir, RenderOptions{})
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "not finite")
				So(paths, ShouldBeEmpty)
				left, _ := filepath.Glob(filepath.Join(dir, "*"))
				So(left, ShouldBeEmpty)
			})

			Convey("Exporting into a missing directory should fail", func() {
				ch, err := BuildChart(r, testSet(), parser.MetricSSIM, "t", parser.Labels{})
				So(err, ShouldBeNil)
				So(ch.Export(filepath.Join(dir, "missing", "ssim.png")), ShouldNotBeNil)
			})
		})
	}
}

func TestGoChartShortSeries(t *testing.T) {
	Convey("When the gochart backend gets fewer than two points", t, func() {
		r := &GoChartRenderer{Width: 600, Height: 375}

		Convey("A single point should be rejected", func() {
			err := r.NewChart().AddSeries([]float64{0.1}, []float64{40}, "PyroWave")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "at least 2")
		})

		Convey("An empty series should be rejected", func() {
			So(r.NewChart().AddSeries(nil, nil, "PyroWave"), ShouldNotBeNil)
		})

		Convey("A failed build should leave the directory empty", func() {
			dir := t.TempDir()
			set := testSet()
			s := set.Series[parser.CodecPyroWave]
			s.Rates = s.Rates[:1]
			for _, m := range set.Metrics {
				s.Scores[m] = s.Scores[m][:1]
			}
			_, err := RenderAll(r, set, dir, RenderOptions{})
			So(err, ShouldNotBeNil)
			left, _ := filepath.Glob(filepath.Join(dir, "*"))
			So(left, ShouldBeEmpty)
		})
	})
}

func TestWriteMeasurementTable(t *testing.T) {
	Convey("Dumping the loaded measurements", t, func() {
		var buf bytes.Buffer
		WriteMeasurementTable(&buf, testSet(), parser.Labels{})
		out := buf.String()

		So(out, ShouldContainSubstring, "H.264 NVENC (h264_nvenc): 4 points")
		So(out, ShouldContainSubstring, "PyroWave (pyrowave): 4 points")
		So(out, ShouldContainSubstring, "W-XPSNR")
		So(out, ShouldContainSubstring, "VMAF NEG")
		So(out, ShouldContainSubstring, "34.25")
		So(strings.Index(out, "H.265 NVENC"), ShouldBeLessThan, strings.Index(out, "AV1 NVENC"))
	})
}

func TestBuildPDFReport(t *testing.T) {
	Convey("When building the PDF report", t, func() {
		dir := t.TempDir()
		set := testSet()
		paths, err := RenderAll(&GonumRenderer{Width: 800, Height: 500}, set, dir, RenderOptions{})
		So(err, ShouldBeNil)

		chartPaths := map[parser.Metric]string{}
		for i, m := range set.Metrics {
			chartPaths[m] = paths[i]
		}
		out := filepath.Join(dir, "report.pdf")
		err = BuildPDFReport(out, PDFReport{
			Title:      "sintel",
			Set:        set,
			ChartPaths: chartPaths,
			Aspect:     500.0 / 800.0,
		})

		Convey("A PDF file should be written", func() {
			So(err, ShouldBeNil)
			So(bytes.HasPrefix(readFile(t, out), []byte("%PDF")), ShouldBeTrue)
		})
	})

	Convey("When a chart image is missing on disk", t, func() {
		dir := t.TempDir()
		err := BuildPDFReport(filepath.Join(dir, "report.pdf"), PDFReport{
			Title:      "sintel",
			Set:        testSet(),
			ChartPaths: map[parser.Metric]string{parser.MetricXPSNR: filepath.Join(dir, "xpsnr.png")},
		})
		So(err, ShouldNotBeNil)
	})

	Convey("Without measurements", t, func() {
		So(BuildPDFReport(filepath.Join(t.TempDir(), "r.pdf"), PDFReport{}), ShouldNotBeNil)
	})
}
