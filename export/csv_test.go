package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-fractal/analysis"
)

func resultFixture() *analysis.Result {
	return &analysis.Result{
		Time:            []float64{0, 0.1, 0.2},
		Classifications: []bool{false, true, true},
		MinLength:       3,
		Thresholds:      analysis.Thresholds{HFD: 1.6, DFA: 0.8},
		Series: []analysis.FeatureSeries{
			{
				Spec: analysis.WindowSpec{Size: 1, Samples: 16000},
				HFD:  []float64{1.2, 1.8, 1.7},
				DFA:  []float64{0.5, 0.9, 0.85},
			},
			{
				Spec: analysis.WindowSpec{Size: 3, Samples: 48000},
				HFD:  []float64{1.3, 1.6, 1.65},
				DFA:  []float64{0.55, 0.8, 0.82},
			},
		},
	}
}

func TestWriteResultCSVHeader(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteResultCSV(resultFixture(), filename))

	raw, err := os.ReadFile(filename)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4) // header + 3 rows
	assert.Equal(t, "Time,Classification,HFD_1s,DFA_1s,HFD_3s,DFA_3s", lines[0])
	assert.Equal(t, "0,false,1.2,0.5,1.3,0.55", lines[1])
}

func TestResultCSVRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "results.csv")
	result := resultFixture()
	require.NoError(t, WriteResultCSV(result, filename))

	table, err := ReadResultCSV(filename)
	require.NoError(t, err)

	assert.Equal(t, result.Time, table.Time)
	assert.Equal(t, result.Classifications, table.Classifications)
	assert.Equal(t, []string{"HFD_1s", "DFA_1s", "HFD_3s", "DFA_3s"}, table.Order)
	assert.Equal(t, result.Series[0].HFD, table.Columns["HFD_1s"])
	assert.Equal(t, result.Series[1].DFA, table.Columns["DFA_3s"])
}

func TestReadResultCSVAcceptsPythonBooleans(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "results.csv")
	content := "Time,Classification,HFD_1s,DFA_1s\n0,True,1.2,0.5\n0.1,False,1.3,0.6\n"
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))

	table, err := ReadResultCSV(filename)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, table.Classifications)
}

func TestReadResultCSVRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadResultCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("Time,Classification\n"), 0o644))
	_, err = ReadResultCSV(empty)
	assert.Error(t, err)

	badHeader := filepath.Join(dir, "bad_header.csv")
	require.NoError(t, os.WriteFile(badHeader, []byte("Start,Label\n0,true\n"), 0o644))
	_, err = ReadResultCSV(badHeader)
	assert.Error(t, err)

	badValue := filepath.Join(dir, "bad_value.csv")
	require.NoError(t, os.WriteFile(badValue, []byte("Time,Classification,HFD_1s\n0,maybe,1.2\n"), 0o644))
	_, err = ReadResultCSV(badValue)
	assert.Error(t, err)
}

func TestResultTableTruncate(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteResultCSV(resultFixture(), filename))

	table, err := ReadResultCSV(filename)
	require.NoError(t, err)

	trimmed := table.Truncate(2)
	assert.Equal(t, 2, trimmed.Len())
	assert.Len(t, trimmed.Columns["HFD_1s"], 2)

	// Asking for more rows than exist is a no-op
	assert.Equal(t, table, table.Truncate(100))
}
