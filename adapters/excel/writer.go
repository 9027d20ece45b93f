package excel

import (
	"fmt"
	"log"

	"groupstat/domain/grouped"

	"github.com/xuri/excelize/v2"
)

const (
	DataSheet   = "Data"
	commentUser = "groupstat"

	// statistics block starts two columns right of the data table
	statsLabelCol = 7
	statsValueCol = 8
)

// statCell describes one annotated statistic in the exported workbook
type statCell struct {
	Label   string
	Value   float64
	Formula string
}

func statCells(result *grouped.StatsResult) []statCell {
	return []statCell{
		{"N", result.TotalFrequency, "N = Σf"},
		{"Mean", result.Mean, "Mean = Σ(f·x) / N, x = class midpoint"},
		{"Median", result.Median, "Median = L + ((N/2 − cf) / f) · h, in the first class whose cumulative frequency reaches N/2"},
		{"Mode", result.Mode, "Mode = L + ((f1 − f0) / ((f1 − f0) + (f1 − f2))) · h, in the first class with the highest frequency"},
		{"Variance", result.Variance, "Variance = Σf(x − mean)² / N (population)"},
		{"Std Dev", result.StdDev, "Standard deviation = √variance"},
	}
}

// WriteAugmented saves a workbook holding the sorted dataset with midpoint and
// width columns, and a statistics block whose cells carry a comment describing
// the formula used.
func WriteAugmented(path string, result *grouped.StatsResult, mapping ColumnMapping) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := []interface{}{
		headerOr(mapping.Lower, "lower"),
		headerOr(mapping.Upper, "upper"),
		headerOr(mapping.Frequency, "frequency"),
		"midpoint",
		"width",
	}
	if err := f.SetSheetRow(DataSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(DataSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range result.Dataset {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Lower, row.Upper, row.Frequency, row.Midpoint, row.Width}
		if err := f.SetSheetRow(DataSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := writeStatistics(f, result, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("[ExcelWriter] Wrote %d rows and statistics to %s", len(result.Dataset), path)
	return nil
}

func writeStatistics(f *excelize.File, result *grouped.StatsResult, bold int) error {
	title, _ := excelize.CoordinatesToCellName(statsLabelCol, 1)
	if err := f.SetCellValue(DataSheet, title, "Statistic"); err != nil {
		return err
	}
	valueTitle, _ := excelize.CoordinatesToCellName(statsValueCol, 1)
	if err := f.SetCellValue(DataSheet, valueTitle, "Value"); err != nil {
		return err
	}
	if err := f.SetCellStyle(DataSheet, title, valueTitle, bold); err != nil {
		return err
	}

	for i, stat := range statCells(result) {
		labelCell, _ := excelize.CoordinatesToCellName(statsLabelCol, i+2)
		valueCell, _ := excelize.CoordinatesToCellName(statsValueCol, i+2)

		if err := f.SetCellValue(DataSheet, labelCell, stat.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(DataSheet, valueCell, stat.Value); err != nil {
			return err
		}
		if err := f.AddComment(DataSheet, excelize.Comment{
			Cell:   valueCell,
			Author: commentUser,
			Text:   stat.Formula,
		}); err != nil {
			return fmt.Errorf("failed to annotate %s: %w", stat.Label, err)
		}
	}
	return nil
}

func headerOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
