package parser

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FilePath returns the location of a codec's measurement file inside dir.
func FilePath(dir string, codec Codec) string {
	return filepath.Join(dir, string(codec)+".csv")
}

// headerIndex maps trimmed header names to their column position.
// A name that appears twice resolves to its last column.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

// parseField reads one required float column from a record.
func parseField(record []string, col int, name string, line int, codec Codec, path string) (float64, error) {
	if col >= len(record) {
		return 0, &MalformedRowError{
			Codec: codec, Path: path, Line: line, Column: name,
			Err: errors.Errorf("record has %d fields, no value for column %d", len(record), col+1),
		}
	}
	raw := strings.TrimSpace(record[col])
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &MalformedRowError{Codec: codec, Path: path, Line: line, Column: name, Value: raw, Err: err}
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, &MalformedRowError{Codec: codec, Path: path, Line: line, Column: name, Value: raw, Err: errors.New("value is not a finite number")}
	}
	return val, nil
}

// ParseSeries reads a header-delimited measurement table for one codec.
// The header must name the rate column and every metric; other columns are ignored.
// Any unparsable value fails the whole table, so the returned slices always stay aligned.
func ParseSeries(r io.Reader, codec Codec, metrics []Metric, path string) (*Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // short records are reported per column below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &MalformedRowError{Codec: codec, Path: path, Err: errors.New("file is empty, expected a header row")}
	}
	if err != nil {
		return nil, csvError(err, codec, path)
	}

	idx := headerIndex(header)
	rateCol, ok := idx[RateColumn]
	if !ok {
		return nil, &MalformedRowError{Codec: codec, Path: path, Column: RateColumn}
	}
	metricCols := make([]int, len(metrics))
	for i, m := range metrics {
		col, ok := idx[string(m)]
		if !ok {
			return nil, &MalformedRowError{Codec: codec, Path: path, Column: string(m)}
		}
		metricCols[i] = col
	}

	series := NewSeries(codec, metrics)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err, codec, path)
		}
		line, _ := reader.FieldPos(0)

		// Parse the whole row before appending anything.
		rate, err := parseField(record, rateCol, RateColumn, line, codec, path)
		if err != nil {
			return nil, err
		}
		scores := make([]float64, len(metrics))
		for i, m := range metrics {
			if scores[i], err = parseField(record, metricCols[i], string(m), line, codec, path); err != nil {
				return nil, err
			}
		}

		series.Rates = append(series.Rates, rate)
		for i, m := range metrics {
			series.Scores[m] = append(series.Scores[m], scores[i])
		}
	}
	return series, nil
}

// csvError turns a reader failure into a MalformedRowError when it is a syntax problem.
func csvError(err error, codec Codec, path string) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedRowError{Codec: codec, Path: path, Line: pe.Line, Err: pe.Err}
	}
	return errors.Wrapf(err, "failed to read CSV data for codec %s from %s", codec, path)
}

// LoadSeries opens <dir>/<codec>.csv and parses it.
func LoadSeries(dir string, codec Codec, metrics []Metric) (*Series, error) {
	path := FilePath(dir, codec)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Codec: codec, Path: path, Err: err}
		}
		return nil, errors.Wrapf(err, "failed to open measurement file for codec %s", codec)
	}
	defer file.Close()

	return ParseSeries(file, codec, metrics, path)
}

// LoadMeasurementSet loads every codec in order and returns the complete set.
// It stops at the first failing codec; no partial set is ever returned.
func LoadMeasurementSet(dir string, codecs []Codec, metrics []Metric) (*MeasurementSet, error) {
	set := &MeasurementSet{
		Codecs:  append([]Codec(nil), codecs...),
		Metrics: append([]Metric(nil), metrics...),
		Series:  make(map[Codec]*Series, len(codecs)),
	}
	for _, codec := range codecs {
		logrus.Debugf("Parsing: %s", FilePath(dir, codec))
		series, err := LoadSeries(dir, codec, metrics)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("Parsed %d rows for codec %s", series.Len(), codec)
		set.Series[codec] = series
	}
	return set, nil
}
