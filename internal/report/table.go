package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/user/rdplot_go/internal/parser"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// measurementHeaders returns "bpp" followed by each metric's display label.
func measurementHeaders(metrics []parser.Metric, labels parser.Labels) []string {
	headers := []string{parser.RateColumn}
	for _, m := range metrics {
		headers = append(headers, labels.Metric(m))
	}
	return headers
}

// measurementRows lays a series back out as rows, in input order.
func measurementRows(s *parser.Series, metrics []parser.Metric) [][]string {
	rows := make([][]string, 0, s.Len())
	for i, rate := range s.Rates {
		row := []string{formatValue(rate)}
		for _, m := range metrics {
			row = append(row, formatValue(s.Scores[m][i]))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteMeasurementTable prints every loaded series as a table, one per codec.
func WriteMeasurementTable(w io.Writer, set *parser.MeasurementSet, labels parser.Labels) {
	for _, codec := range set.Codecs {
		s := set.Get(codec)
		if s == nil {
			continue
		}
		fmt.Fprintf(w, "%s (%s): %d points\n", labels.Codec(codec), codec, s.Len())
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetHeader(measurementHeaders(set.Metrics, labels))
		table.AppendBulk(measurementRows(s, set.Metrics))
		table.Render()
	}
}
