package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gocorr/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// cellText renders a cell the way it would be typed into a spreadsheet.
func cellText(c dataset.Cell) string {
	switch c.Kind {
	case dataset.CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case dataset.CellText, dataset.CellParseFailure:
		return c.Raw
	default:
		return ""
	}
}

// WriteCSV exports a table with a header row, comma separated.
func WriteCSV(w io.Writer, table *dataset.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		for j, col := range table.Columns {
			record[j] = cellText(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX saves a table to a workbook with a single sheet. Numbers are
// stored as numeric cells.
func WriteXLSX(path, sheet string, table *dataset.Table) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(table.Columns))
	for j, col := range table.Columns {
		header[j] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		for j, col := range table.Columns {
			cell := row[col]
			if cell.Kind == dataset.CellNumber {
				values[j] = cell.Number
			} else {
				values[j] = cellText(cell)
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
