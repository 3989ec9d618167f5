// Package export holds the persistence and visualization collaborators of
// the analysis pipeline: CSV output, PNG rendering, and run comparison.
// No analysis happens here; everything consumes an assembled Result.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/RyanBlaney/sonido-fractal/analysis"
	"github.com/RyanBlaney/sonido-fractal/logging"
)

// WriteResultCSV persists the truncated time axis, the per-window-size
// feature series, and the classification sequence as one row per time
// step. Column names encode the window size ("HFD_1s", "DFA_3s") so
// multiple scales stay distinguishable.
func WriteResultCSV(result *analysis.Result, filename string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "csv_export",
		"filename":  filename,
	})
	logger.Debug("Saving analysis results")

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Time", "Classification"}
	for _, s := range result.Series {
		header = append(header, "HFD_"+s.Spec.Label(), "DFA_"+s.Spec.Label())
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(header))
	for i := 0; i < result.MinLength; i++ {
		row[0] = formatFloat(result.Time[i])
		row[1] = strconv.FormatBool(result.Classifications[i])
		col := 2
		for _, s := range result.Series {
			row[col] = formatFloat(s.HFD[i])
			row[col+1] = formatFloat(s.DFA[i])
			col += 2
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	logger.Debug("Results saved", logging.Fields{
		"rows": result.MinLength,
	})
	return nil
}

// ResultTable is a result CSV loaded back into memory, for comparison runs
type ResultTable struct {
	Time            []float64
	Classifications []bool

	// Measure columns (HFD_1s, DFA_3s, ...) in header order
	Columns map[string][]float64
	Order   []string
}

// Len returns the number of rows
func (t *ResultTable) Len() int {
	return len(t.Time)
}

// Truncate returns a view of the first n rows
func (t *ResultTable) Truncate(n int) *ResultTable {
	if n >= t.Len() {
		return t
	}
	trimmed := &ResultTable{
		Time:            t.Time[:n],
		Classifications: t.Classifications[:n],
		Columns:         make(map[string][]float64, len(t.Columns)),
		Order:           t.Order,
	}
	for name, col := range t.Columns {
		trimmed.Columns[name] = col[:n]
	}
	return trimmed
}

// ReadResultCSV loads a result CSV produced by WriteResultCSV
func ReadResultCSV(filename string) (*ResultTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv %s has no data rows", filename)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "Time" || header[1] != "Classification" {
		return nil, fmt.Errorf("unexpected csv header in %s: %v", filename, header)
	}

	table := &ResultTable{
		Columns: make(map[string][]float64, len(header)-2),
	}
	for _, name := range header[2:] {
		table.Order = append(table.Order, name)
		table.Columns[name] = make([]float64, 0, len(records)-1)
	}

	for rowIdx, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("csv row %d has %d fields, want %d", rowIdx+1, len(record), len(header))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad time value at row %d: %w", rowIdx+1, err)
		}
		table.Time = append(table.Time, t)

		cls, err := parseClassification(record[1])
		if err != nil {
			return nil, fmt.Errorf("bad classification at row %d: %w", rowIdx+1, err)
		}
		table.Classifications = append(table.Classifications, cls)

		for col, name := range header[2:] {
			v, err := strconv.ParseFloat(record[col+2], 64)
			if err != nil {
				return nil, fmt.Errorf("bad %s value at row %d: %w", name, rowIdx+1, err)
			}
			table.Columns[name] = append(table.Columns[name], v)
		}
	}

	return table, nil
}

// parseClassification accepts both this tool's booleans and the True/False
// spelling other tooling writes
func parseClassification(s string) (bool, error) {
	switch s {
	case "true", "True", "TRUE", "1":
		return true, nil
	case "false", "False", "FALSE", "0":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized classification value %q", s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
