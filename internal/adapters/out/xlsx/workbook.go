// Package xlsx renders the efficiency report as an Excel workbook with two
// sheets: the pivoted report and the raw history it was built from.
package xlsx

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/services"

	"github.com/xuri/excelize/v2"
)

const (
	ReportSheet  = "Report"
	HistorySheet = "History"
)

// HistoryColumns is the header row of the History sheet.
var HistoryColumns = []string{
	services.ColumnOrderID,
	services.ColumnOrderNum,
	services.ColumnClient,
	"Stage",
	"Entry",
	"Exit",
	"Duration",
}

// Render builds the workbook. The caller owns the returned file and must
// Close it.
func Render(table services.ReportTable, records []history.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(HistorySheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err = writeSheet(f, ReportSheet, header, table.Columns(), table.Values()); err != nil {
		_ = f.Close()
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.OrderID().String(),
			r.OrderNumber(),
			r.Client(),
			r.Stage().String(),
			r.EntryTime().UTC().Format(time.DateTime),
			r.ExitTime().UTC().Format(time.DateTime),
			services.FormatDuration(r.Duration()),
		})
	}
	if err = writeSheet(f, HistorySheet, header, HistoryColumns, rows); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, columns []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, columns); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if len(columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(columns))
		if err != nil {
			return err
		}
		if err = f.SetColWidth(sheet, "A", last, 18); err != nil {
			return err
		}
	}

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	line := make([]interface{}, len(values))
	for i, v := range values {
		line[i] = v
	}

	if err = f.SetSheetRow(sheet, cell, &line); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
