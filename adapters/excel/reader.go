// Package excel loads observation series from Excel and CSV files into the
// domain time-series type.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"heliocorr/domain/timeseries"
)

// SeriesReader handles reading two-column (timestamp, value) series files
type SeriesReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// Timestamp layouts accepted in the first column, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
}

// NewSeriesReader creates a reader that handles both Excel and CSV files
func NewSeriesReader(filePath string) *SeriesReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SeriesReader{filePath: filePath, fileType: fileType}
}

// ReadSeries loads the file into a validated time series. The first row is
// treated as a header when its value column does not parse as a number. Rows
// are sorted chronologically; duplicate timestamps are rejected because the
// aligner cannot attribute them.
func (r *SeriesReader) ReadSeries() (*timeseries.TimeSeries, error) {
	log.Printf("[SeriesReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return r.buildSeries(rows)
}

// readExcelRows reads raw rows from Sheet1
func (r *SeriesReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[SeriesReader] Sheet1 read in %.2fms (%d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads raw rows from a CSV file
func (r *SeriesReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[SeriesReader] CSV file read (%d rows)", len(rows))
	return rows, nil
}

type sample struct {
	ts    time.Time
	value float64
}

// buildSeries converts raw rows into a sorted, validated time series
func (r *SeriesReader) buildSeries(rows [][]string) (*timeseries.TimeSeries, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file contains no rows")
	}

	startRow := 0
	if isHeaderRow(rows[0]) {
		startRow = 1
	}

	samples := make([]sample, 0, len(rows)-startRow)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		ts, err := parseTimestamp(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: unparseable value %q", i+1, row[1])
		}
		samples = append(samples, sample{ts: ts, value: value})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("file contains no data rows")
	}

	sort.Slice(samples, func(a, b int) bool { return samples[a].ts.Before(samples[b].ts) })

	timestamps := make([]time.Time, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		if i > 0 && s.ts.Equal(samples[i-1].ts) {
			return nil, fmt.Errorf("duplicate timestamp %s", s.ts.Format(time.RFC3339))
		}
		timestamps[i] = s.ts
		values[i] = s.value
	}

	series, err := timeseries.New(timestamps, values)
	if err != nil {
		return nil, err
	}
	log.Printf("[SeriesReader] Loaded %d samples spanning %s to %s",
		series.Len(), timestamps[0].Format(time.DateOnly), timestamps[len(timestamps)-1].Format(time.DateOnly))
	return series, nil
}

// isHeaderRow treats the first row as a header when its second column is not
// numeric.
func isHeaderRow(row []string) bool {
	if len(row) < 2 {
		return true
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	return err != nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	// Excel sometimes hands back a serial day number.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
