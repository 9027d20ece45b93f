package excel

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"groupstat/adapters/stats/engine"
	"groupstat/domain/grouped"
	"groupstat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "classes.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDataReader_Excel(t *testing.T) {
	path := writeWorkbook(t, "Classes", [][]interface{}{
		{" From ", "To", "Count"},
		{0, 10, 5},
		{10, 20, 8},
		{20, 30, 3},
	})

	data, err := NewDataReader(path, "Classes").ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"From", "To", "Count"}, data.Headers)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "10", data.Rows[1]["From"])

	_, err = NewDataReader(path, "").ReadData()
	assert.Error(t, err, "Sheet1 holds no rows")
}

func TestDataReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.csv")
	require.NoError(t, os.WriteFile(path, []byte("lower,upper,frequency\n0,10,5\n10,20,8\n20,30\n"), 0o644))

	data, err := NewDataReader(path, "").ReadData()
	require.NoError(t, err)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "", data.Rows[2]["frequency"])
}

func TestDataReader_Errors(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.xlsx"), "").ReadData()
	assert.Error(t, err)

	headerOnly := filepath.Join(t.TempDir(), "header.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("lower,upper,frequency\n"), 0o644))
	_, err = NewDataReader(headerOnly, "").ReadData()
	assert.Error(t, err)
}

func TestExtractRows(t *testing.T) {
	data := &ExcelData{
		Headers: []string{"From", "To", "Count", "Note"},
		Rows: []RawRowData{
			{"From": "0", "To": "10", "Count": "5", "Note": "first"},
			{"From": "", "To": "", "Count": "", "Note": "spacer"},
			{"From": "10", "To": "20", "Count": " 8 "},
		},
	}
	mapping := ColumnMapping{Lower: "From", Upper: "To", Frequency: "Count"}

	rows, err := ExtractRows(data, mapping)
	require.NoError(t, err)
	assert.Equal(t, []grouped.IntervalRow{
		grouped.NewIntervalRow(0, 10, 5),
		grouped.NewIntervalRow(10, 20, 8),
	}, rows)
}

func TestExtractRows_Errors(t *testing.T) {
	data := &ExcelData{
		Headers: []string{"From", "To", "Count"},
		Rows: []RawRowData{
			{"From": "0", "To": "10", "Count": "5"},
			{"From": "10", "To": "twenty", "Count": "8"},
		},
	}

	_, err := ExtractRows(data, ColumnMapping{Lower: "From", Upper: "To", Frequency: "Freq"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Contains(t, err.Error(), `column "Freq" not found`)

	_, err = ExtractRows(data, ColumnMapping{Lower: "From", Upper: "To", Frequency: "Count"})
	require.Error(t, err)
	assert.EqualError(t, err, `row 3: column "To": invalid number "twenty"`)

	empty := &ExcelData{Headers: []string{"a", "b", "c"}, Rows: []RawRowData{{}}}
	_, err = ExtractRows(empty, ColumnMapping{Lower: "a", Upper: "b", Frequency: "c"})
	assert.EqualError(t, err, "no data rows found")
}

func TestExtractValues(t *testing.T) {
	data := &ExcelData{
		Headers: []string{"value"},
		Rows:    []RawRowData{{"value": "1.5"}, {"value": ""}, {"value": "3"}},
	}
	values, err := ExtractValues(data, "value")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 3}, values)

	_, err = ExtractValues(data, "missing")
	assert.Error(t, err)
}

func TestWriteAugmented(t *testing.T) {
	result, err := engine.NewGroupedStatsEngine().Compute([]grouped.IntervalRow{
		grouped.NewIntervalRow(10, 20, 8),
		grouped.NewIntervalRow(0, 10, 5),
		grouped.NewIntervalRow(20, 30, 3),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteAugmented(path, result, ColumnMapping{Lower: "From", Upper: "To", Frequency: "Count"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)
	assert.Equal(t, []string{"From", "To", "Count", "midpoint", "width"}, rows[0][:5])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "5", rows[1][3])

	label, err := f.GetCellValue(DataSheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "Mean", label)

	mean, err := f.GetCellValue(DataSheet, "H3")
	require.NoError(t, err)
	parsed, err := strconv.ParseFloat(mean, 64)
	require.NoError(t, err)
	assert.Equal(t, 13.75, parsed)

	comments, err := f.GetComments(DataSheet)
	require.NoError(t, err)
	assert.Len(t, comments, 6)
}
