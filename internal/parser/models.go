package parser

// RateColumn is the header name of the rate (bits per pixel) column.
const RateColumn = "bpp"

// Codec identifies one encoder configuration under comparison, e.g. "h264_nvenc".
// Its measurement file is named "<codec>.csv".
type Codec string

// Metric identifies one quality metric column, e.g. "xpsnr".
type Metric string

const (
	CodecH264NVENC Codec = "h264_nvenc"
	CodecHEVCNVENC Codec = "hevc_nvenc"
	CodecAV1NVENC  Codec = "av1_nvenc"
	CodecPyroWave  Codec = "pyrowave"
)

const (
	MetricXPSNR       Metric = "xpsnr"
	MetricSSIM        Metric = "ssim"
	MetricSSIMULACRA2 Metric = "ssimulacra2"
	MetricVMAF        Metric = "vmaf"
	MetricVMAFNeg     Metric = "vmafneg"
)

// DefaultCodecs is the configured codec order; series are plotted in this order.
var DefaultCodecs = []Codec{CodecH264NVENC, CodecHEVCNVENC, CodecAV1NVENC, CodecPyroWave}

// DefaultMetrics lists the metric columns read from every file, one chart each.
var DefaultMetrics = []Metric{MetricXPSNR, MetricSSIM, MetricSSIMULACRA2, MetricVMAF, MetricVMAFNeg}

var codecLabels = map[Codec]string{
	CodecH264NVENC: "H.264 NVENC",
	CodecHEVCNVENC: "H.265 NVENC",
	CodecAV1NVENC:  "AV1 NVENC",
	CodecPyroWave:  "PyroWave",
}

var metricLabels = map[Metric]string{
	MetricXPSNR:       "W-XPSNR",
	MetricSSIM:        "SSIM",
	MetricSSIMULACRA2: "SSIMULACRA2",
	MetricVMAF:        "VMAF",
	MetricVMAFNeg:     "VMAF NEG",
}

// Label returns the display name of the codec, or the raw identifier if it is not a known codec.
func (c Codec) Label() string {
	if l, ok := codecLabels[c]; ok {
		return l
	}
	return string(c)
}

// Label returns the display name of the metric, or the raw identifier if it is not a known metric.
func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// Labels maps identifiers to display names. A nil map or a missing key
// falls back to the static tables above.
type Labels struct {
	Codecs  map[Codec]string
	Metrics map[Metric]string
}

// Codec returns the display name of c.
func (l Labels) Codec(c Codec) string {
	if name, ok := l.Codecs[c]; ok && name != "" {
		return name
	}
	return c.Label()
}

// Metric returns the display name of m.
func (l Labels) Metric(m Metric) string {
	if name, ok := l.Metrics[m]; ok && name != "" {
		return name
	}
	return m.Label()
}

// Series holds every measurement for a single codec, in file row order.
// Rates[i] and Scores[m][i] come from the same input row, for every metric m.
type Series struct {
	Codec  Codec
	Rates  []float64
	Scores map[Metric][]float64
}

// NewSeries creates an empty series with one score slice per metric.
func NewSeries(codec Codec, metrics []Metric) *Series {
	s := &Series{
		Codec:  codec,
		Rates:  make([]float64, 0),
		Scores: make(map[Metric][]float64, len(metrics)),
	}
	for _, m := range metrics {
		s.Scores[m] = make([]float64, 0)
	}
	return s
}

// Len returns the number of sample points (input rows).
func (s *Series) Len() int {
	return len(s.Rates)
}

// MeasurementSet is the fully loaded data for one invocation.
// It is built once by LoadMeasurementSet and never mutated afterwards.
type MeasurementSet struct {
	Codecs  []Codec // configured order
	Metrics []Metric
	Series  map[Codec]*Series
}

// Get returns the series for the codec, or nil if it was not loaded.
func (ms *MeasurementSet) Get(codec Codec) *Series {
	if ms == nil {
		return nil
	}
	return ms.Series[codec]
}
