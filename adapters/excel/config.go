package excel

// ColumnMapping names the spreadsheet columns holding each row field
type ColumnMapping struct {
	Lower     string `json:"lower"`
	Upper     string `json:"upper"`
	Frequency string `json:"frequency"`
}

// ExcelConfig holds configuration for a spreadsheet data source
type ExcelConfig struct {
	FilePath string        `json:"file_path"`
	Sheet    string        `json:"sheet"`
	Columns  ColumnMapping `json:"columns"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Sheet: "Sheet1",
		Columns: ColumnMapping{
			Lower:     "lower",
			Upper:     "upper",
			Frequency: "frequency",
		},
	}
}
