package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KaramelBytes/statloom-cli/internal/dataset"
)

func rowsOf(lines ...string) dataset.Rows {
	rows, err := dataset.LoadReader(strings.NewReader(strings.Join(lines, "\n")), ',')
	if err != nil {
		panic(err)
	}
	return rows
}

func TestExtract_SkipsUnparsableRows(t *testing.T) {
	rows := rowsOf("h1,h2", "1,2", "x,4", "3,5")

	c0, err := dataset.Extract(rows, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, c0.Values)
	assert.Equal(t, "h1", c0.Header)
	require.Len(t, c0.Skipped, 1)
	assert.Equal(t, 2, c0.Skipped[0].Row)
	assert.Equal(t, "x", c0.Skipped[0].Raw)

	c1, err := dataset.Extract(rows, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 5}, c1.Values)
	assert.Empty(t, c1.Skipped)
}

func TestExtract_CountsEveryDataRow(t *testing.T) {
	rows := rowsOf("a,b,c", "1,,3", " 2 ,b,4", "NaNx,7,", "4.5e1,8,9")
	c, err := dataset.Extract(rows, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 45}, c.Values)
	assert.Equal(t, len(rows)-1, len(c.Values)+len(c.Skipped))

	c2, err := dataset.Extract(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 9}, c2.Values)
	require.Len(t, c2.Skipped, 1)
	assert.Equal(t, "", c2.Skipped[0].Raw)
}

func TestExtract_ColumnOutOfRange(t *testing.T) {
	rows := rowsOf("a,b,c", "1,2,3", "4,5")
	_, err := dataset.Extract(rows, 2)
	var rangeErr *dataset.ColumnRangeError
	require.True(t, errors.As(err, &rangeErr), "expected range error, got %v", err)
	assert.Equal(t, 2, rangeErr.Row)
	assert.Equal(t, 2, rangeErr.Width)

	_, err = dataset.Extract(rows, -1)
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "column -1 out of range: index must be >= 0", err.Error())
	assert.NotContains(t, err.Error(), "fields")
}

func TestExtract_HeaderOnlyAndEmpty(t *testing.T) {
	c, err := dataset.Extract(rowsOf("a,b"), 5)
	require.NoError(t, err)
	assert.Empty(t, c.Values)
	assert.Equal(t, "", c.Header)

	c, err = dataset.Extract(nil, 11)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestColumn_LogSkips(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c, err := dataset.Extract(rowsOf("v", "1", "bad", "", "2"), 0)
	require.NoError(t, err)
	c.LogSkips(zap.New(core))
	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "error parsing value", entry.Message)
	assert.Equal(t, int64(2), entry.ContextMap()["row"])
	assert.Equal(t, int64(0), entry.ContextMap()["column"])
}

func TestLoadReader_LiteralSplit(t *testing.T) {
	rows, err := dataset.LoadReader(strings.NewReader("a,\"b,c\"\r\n1,,2\r\n"), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, dataset.Row{"a", "\"b", "c\""}, rows[0])
	assert.Equal(t, dataset.Row{"1", "", "2"}, rows[1])
}

func TestLoad_CSVFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mlb.csv")
	require.NoError(t, os.WriteFile(p, []byte("name,avg\nRuth,0.342\nCobb,0.366\n"), 0o644))

	rows, err := dataset.Load(p, dataset.LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, dataset.Row{"name", "avg"}, dataset.Headers(rows))
}

func TestLoad_SemicolonAndTSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(p, []byte("a;b\n1;2\n"), 0o644))
	rows, err := dataset.Load(p, dataset.LoadOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, dataset.Row{"1", "2"}, rows[1])

	tsv := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(tsv, []byte("a\tb\n3\t4\n"), 0o644))
	rows, err = dataset.Load(tsv, dataset.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, dataset.Row{"3", "4"}, rows[1])
}

func TestLoad_MissingFile(t *testing.T) {
	rows, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv"), dataset.LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, rows)
	assert.Empty(t, dataset.Headers(rows))
}

func writeXLSX(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		require.NoError(t, err)
		f.SetActiveSheet(idx)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLoad_XLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "players.xlsx")
	writeXLSX(t, p, "Stats", [][]any{
		{"player", "avg", "salary"},
		{"a", 0.3, 1000},
		{"b", 0.25},
		{"c", "n/a", 3000},
	})

	rows, err := dataset.Load(p, dataset.LoadOptions{Sheet: "stats"})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Len(t, r, 3)
	}

	salary, err := dataset.Extract(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 3000}, salary.Values)
	assert.Len(t, salary.Skipped, 1)

	avg, err := dataset.Extract(rows, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.25}, avg.Values)

	_, err = dataset.Load(p, dataset.LoadOptions{Sheet: "Missing"})
	assert.True(t, errors.Is(err, dataset.ErrNoSheet))
}
