package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/user/rdplot_go/internal/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rdplot.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	Convey("The built-in config", t, func() {
		cfg := Default()

		So(cfg.Validate(), ShouldBeNil)
		So(cfg.Renderer, ShouldEqual, RendererGonum)
		So(cfg.Format, ShouldEqual, "png")
		So(cfg.CodecIDs(), ShouldResemble, parser.DefaultCodecs)
		So(cfg.MetricIDs(), ShouldResemble, parser.DefaultMetrics)
		So(cfg.Labels().Metric(parser.MetricXPSNR), ShouldEqual, "W-XPSNR")
		So(cfg.EmbeddableInPDF(), ShouldBeTrue)

		Convey("Each backend should accept only the formats it encodes", func() {
			cfg.Format = "tiff"
			So(cfg.Validate(), ShouldBeNil)
			cfg.Renderer = RendererGoChart
			So(cfg.Validate(), ShouldNotBeNil)
			cfg.Format = "svg"
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("When loading a config file", t, func() {

		Convey("With only a renderer and format", func() {
			cfg, err := Load(writeConfig(t, "renderer: gochart\nformat: .SVG\n"))
			So(err, ShouldBeNil)

			Convey("Other fields should take defaults", func() {
				So(cfg.Renderer, ShouldEqual, RendererGoChart)
				So(cfg.Format, ShouldEqual, "svg")
				So(cfg.Width, ShouldEqual, 800)
				So(cfg.Codecs, ShouldHaveLength, 4)
				So(cfg.Metrics, ShouldHaveLength, 5)
				So(cfg.EmbeddableInPDF(), ShouldBeFalse)
			})
		})

		Convey("With a custom codec list and labels", func() {
			cfg, err := Load(writeConfig(t, `
codecs:
  - {id: pyrowave, label: "PyroWave 2"}
  - {id: x265}
metrics:
  - {id: vmaf}
`))
			So(err, ShouldBeNil)

			Convey("The list should replace the defaults in order", func() {
				So(cfg.CodecIDs(), ShouldResemble, []parser.Codec{"pyrowave", "x265"})
				So(cfg.MetricIDs(), ShouldResemble, []parser.Metric{"vmaf"})
				So(cfg.Labels().Codec("pyrowave"), ShouldEqual, "PyroWave 2")
				So(cfg.Labels().Codec("x265"), ShouldEqual, "x265")
			})
		})

		Convey("With a duplicated metric", func() {
			_, err := Load(writeConfig(t, "metrics:\n  - {id: ssim}\n  - {id: ssim}\n"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "defined twice")
		})

		Convey("With an unknown renderer", func() {
			_, err := Load(writeConfig(t, "renderer: plotly\n"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown renderer")
		})

		Convey("With a format the gochart backend cannot encode", func() {
			_, err := Load(writeConfig(t, "renderer: gochart\nformat: jpg\n"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "cannot write \"jpg\" images")
		})

		Convey("With JPEG output on the gonum backend", func() {
			cfg, err := Load(writeConfig(t, "format: JPG\n"))
			So(err, ShouldBeNil)
			So(cfg.Format, ShouldEqual, "jpg")
			So(cfg.EmbeddableInPDF(), ShouldBeTrue)
		})

		Convey("With a metric named like the rate column", func() {
			_, err := Load(writeConfig(t, "metrics:\n  - {id: bpp}\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("With invalid YAML", func() {
			_, err := Load(writeConfig(t, "codecs: [\n"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "parsing config")
		})

		Convey("With a missing file", func() {
			_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
