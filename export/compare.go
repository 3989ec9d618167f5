package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-fractal/algorithms/common"
)

// ColumnStats summarizes one measure column of one run
type ColumnStats struct {
	Column string  `json:"column"`
	File   string  `json:"file"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Comparison is the outcome of comparing two analysis runs row by row
type Comparison struct {
	File1 string `json:"file_1"`
	File2 string `json:"file_2"`

	// ClassificationMatch is the percentage of rows where both runs
	// agree on the AI label
	ClassificationMatch float64 `json:"classification_match"`

	Stats []ColumnStats `json:"stats"`
}

// CompareResultFiles loads two result CSVs, trims both to the shorter row
// count, and summarizes every measure column the files share, plus the
// classification agreement between the two runs.
func CompareResultFiles(file1, file2 string) (*Comparison, error) {
	table1, err := ReadResultCSV(file1)
	if err != nil {
		return nil, err
	}
	table2, err := ReadResultCSV(file2)
	if err != nil {
		return nil, err
	}

	minLength := min(table1.Len(), table2.Len())
	if minLength == 0 {
		return nil, fmt.Errorf("nothing to compare: one of the files is empty")
	}
	table1 = table1.Truncate(minLength)
	table2 = table2.Truncate(minLength)

	label1 := filepath.Base(file1)
	label2 := filepath.Base(file2)

	comparison := &Comparison{File1: label1, File2: label2}

	for _, column := range table1.Order {
		if _, ok := table2.Columns[column]; !ok {
			continue
		}
		comparison.Stats = append(comparison.Stats,
			columnStats(column, label1, table1.Columns[column]),
			columnStats(column, label2, table2.Columns[column]),
		)
	}

	matches := 0
	for i := 0; i < minLength; i++ {
		if table1.Classifications[i] == table2.Classifications[i] {
			matches++
		}
	}
	comparison.ClassificationMatch = 100.0 * float64(matches) / float64(minLength)

	return comparison, nil
}

func columnStats(column, file string, data []float64) ColumnStats {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	minVal, maxVal := common.MinMax(data)

	return ColumnStats{
		Column: column,
		File:   file,
		Mean:   common.Mean(data),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Std:    common.PopStdDev(data),
		Min:    minVal,
		Max:    maxVal,
	}
}

// WriteComparisonCSV persists the per-column summary statistics
func (c *Comparison) WriteComparisonCSV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create comparison csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Column", "File", "Mean", "Median", "Std", "Min", "Max"}); err != nil {
		return fmt.Errorf("failed to write comparison header: %w", err)
	}

	for _, s := range c.Stats {
		row := []string{
			s.Column,
			s.File,
			formatFloat(s.Mean),
			formatFloat(s.Median),
			formatFloat(s.Std),
			formatFloat(s.Min),
			formatFloat(s.Max),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write comparison row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// String renders a short human-readable summary
func (c *Comparison) String() string {
	return fmt.Sprintf("%s vs %s: classification match %s%%",
		c.File1, c.File2, strconv.FormatFloat(c.ClassificationMatch, 'f', 2, 64))
}
