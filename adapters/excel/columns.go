package excel

import (
	"strconv"
	"strings"

	"groupstat/domain/grouped"
	"groupstat/internal/errors"
)

// ValidateColumns checks that every mapped column exists in the data
func ValidateColumns(data *ExcelData, mapping ColumnMapping) error {
	for _, col := range []string{mapping.Lower, mapping.Upper, mapping.Frequency} {
		if err := requireColumn(data, col); err != nil {
			return err
		}
	}
	return nil
}

// ExtractRows converts spreadsheet rows into interval rows using the column
// mapping. Rows whose three mapped cells are all blank are skipped. Row
// numbers in errors are spreadsheet rows, with the header on row 1.
func ExtractRows(data *ExcelData, mapping ColumnMapping) ([]grouped.IntervalRow, error) {
	if err := ValidateColumns(data, mapping); err != nil {
		return nil, err
	}

	rows := make([]grouped.IntervalRow, 0, len(data.Rows))
	for i, raw := range data.Rows {
		lowerCell, upperCell, freqCell := raw[mapping.Lower], raw[mapping.Upper], raw[mapping.Frequency]
		if lowerCell == "" && upperCell == "" && freqCell == "" {
			continue
		}

		sheetRow := i + 2
		lower, err := parseCell(sheetRow, mapping.Lower, lowerCell)
		if err != nil {
			return nil, err
		}
		upper, err := parseCell(sheetRow, mapping.Upper, upperCell)
		if err != nil {
			return nil, err
		}
		freq, err := parseCell(sheetRow, mapping.Frequency, freqCell)
		if err != nil {
			return nil, err
		}

		rows = append(rows, grouped.NewIntervalRow(lower, upper, freq))
	}

	if len(rows) == 0 {
		return nil, errors.ValidationError("no data rows found")
	}
	return rows, nil
}

// ExtractValues parses one column as raw observations, skipping blank cells
func ExtractValues(data *ExcelData, column string) ([]float64, error) {
	if err := requireColumn(data, column); err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(data.Rows))
	for i, cell := range data.Column(column) {
		if cell == "" {
			continue
		}
		v, err := parseCell(i+2, column, cell)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func requireColumn(data *ExcelData, column string) error {
	if column == "" {
		return errors.ValidationError("column name is required")
	}
	if !data.HasColumn(column) {
		return errors.ValidationErrorf("column %q not found (available: %s)", column, strings.Join(data.Headers, ", "))
	}
	return nil
}

func parseCell(row int, column, cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errors.ValidationErrorf("row %d: column %q: invalid number %q", row, column, cell)
	}
	return v, nil
}
