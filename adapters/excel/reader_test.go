package excel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadSeries_CSVWithHeader(t *testing.T) {
	path := writeCSV(t, "activity.csv",
		"date,sunspots\n"+
			"2024-01-01,55.2\n"+
			"2024-02-01,61.8\n"+
			"2024-03-01,70.1\n")

	series, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("ReadSeries failed: %v", err)
	}

	if series.Len() != 3 {
		t.Fatalf("Expected 3 samples, got %d", series.Len())
	}
	ts, v := series.First()
	if ts.Format(time.DateOnly) != "2024-01-01" || v != 55.2 {
		t.Errorf("Unexpected first sample: %s %v", ts, v)
	}
}

func TestReadSeries_CSVWithoutHeader(t *testing.T) {
	path := writeCSV(t, "raw.csv",
		"2024-01-01,1.5\n"+
			"2024-02-01,2.5\n")

	series, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("ReadSeries failed: %v", err)
	}
	if series.Len() != 2 {
		t.Errorf("Expected 2 samples, got %d", series.Len())
	}
}

func TestReadSeries_SortsOutOfOrderRows(t *testing.T) {
	path := writeCSV(t, "unsorted.csv",
		"date,value\n"+
			"2024-03-01,3\n"+
			"2024-01-01,1\n"+
			"2024-02-01,2\n")

	series, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("ReadSeries failed: %v", err)
	}

	prev, _ := series.First()
	for i := 1; i < series.Len(); i++ {
		ts, _ := series.At(i)
		if !ts.After(prev) {
			t.Errorf("Samples not sorted at index %d", i)
		}
		prev = ts
	}
}

func TestReadSeries_RejectsDuplicateTimestamps(t *testing.T) {
	path := writeCSV(t, "dupes.csv",
		"date,value\n"+
			"2024-01-01,1\n"+
			"2024-01-01,2\n")

	if _, err := NewSeriesReader(path).ReadSeries(); err == nil {
		t.Fatal("Expected error for duplicate timestamps")
	}
}

func TestReadSeries_RejectsBadValue(t *testing.T) {
	path := writeCSV(t, "bad.csv",
		"date,value\n"+
			"2024-01-01,not-a-number\n")

	if _, err := NewSeriesReader(path).ReadSeries(); err == nil {
		t.Fatal("Expected error for unparseable value")
	}
}

func TestReadSeries_MissingFile(t *testing.T) {
	if _, err := NewSeriesReader("/nonexistent/series.csv").ReadSeries(); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestReadSeries_SkipsBlankRows(t *testing.T) {
	path := writeCSV(t, "gaps.csv",
		"date,value\n"+
			"2024-01-01,1\n"+
			",\n"+
			"2024-02-01,2\n")

	series, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("ReadSeries failed: %v", err)
	}
	if series.Len() != 2 {
		t.Errorf("Expected blank row to be skipped, got %d samples", series.Len())
	}
}

func TestReadSeries_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.xlsx")

	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]interface{}{"date", "value"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2024-01-01", 10.5})
	_ = f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2024-02-01", 12.25})
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("writing xlsx fixture: %v", err)
	}

	series, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("ReadSeries failed: %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("Expected 2 samples, got %d", series.Len())
	}
	_, v := series.Last()
	if v != 12.25 {
		t.Errorf("Expected last value 12.25, got %v", v)
	}
}
