package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	ValueColumn string // Column name for values (default: "y")
	DateColumn  string // Column name for dates (optional)
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// missing values are dropped rather than rejected
var missingValues = map[string]bool{"": true, "NA": true, "NaN": true, "null": true}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return series, nil
}

// LoadCSVFromReader loads a time series from an io.Reader.
//
// Without a header the last column holds the values and the first column,
// when there is more than one, holds the dates. Cells that do not parse as
// numbers are rejected with their line number; empty and NA cells are skipped.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	valueIdx, dateIdx := -1, -1
	line := opts.SkipRows

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		line++
		valueIdx, dateIdx = headerIndices(header, opts)
		if valueIdx == -1 {
			return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
		}
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		vi, di := valueIdx, dateIdx
		if !opts.HasHeader {
			vi = len(record) - 1
			if len(record) > 1 {
				di = 0
			}
		}
		if vi < 0 || vi >= len(record) {
			return nil, fmt.Errorf("line %d: missing value column", line)
		}

		cell := clean(record[vi])
		if missingValues[cell] {
			continue
		}
		val, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid number %q", line, cell)
		}
		values = append(values, val)

		if di >= 0 && di < len(record) {
			if ts, ok := parseDate(clean(record[di]), opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	if len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values}, nil
	}
	return New(values), nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	series, err := LoadCSV(filename, opts)
	if err != nil {
		return nil, err
	}
	series.Name = column
	return series, nil
}

func headerIndices(header []string, opts *CSVOptions) (valueIdx, dateIdx int) {
	valueIdx, dateIdx = -1, -1
	for i, h := range header {
		h = clean(h)
		switch {
		case h == opts.ValueColumn:
			valueIdx = i
		case opts.ValueColumn == "" && (h == "y" || h == "value" || h == "Value"):
			valueIdx = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			dateIdx = i
		case opts.DateColumn == "" && dateIdx == -1 && (h == "ds" || h == "date" || h == "Date"):
			dateIdx = i
		}
	}
	if valueIdx == -1 && opts.ValueColumn == "" && len(header) > 0 {
		valueIdx = len(header) - 1
	}
	return valueIdx, dateIdx
}

func parseDate(s, preferred string) (time.Time, bool) {
	for _, layout := range []string{preferred, "2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006/01/02", "01/02/2006"} {
		if layout == "" {
			continue
		}
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}
