package services

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
)

// Fixed report columns around the per-stage ones.
const (
	ColumnOrderID    = "Order ID"
	ColumnOrderNum   = "OP Number"
	ColumnClient     = "Client"
	ColumnTotal      = "Total"
	ColumnEfficiency = "Efficiency (%)"

	// NotAvailable renders an undefined efficiency.
	NotAvailable = "N/A"
)

// StageCell is the time one order spent in one stage.
type StageCell struct {
	Entry    time.Time
	Exit     time.Time
	Duration time.Duration
}

// ReportRow is one order in the report. Stages the order never passed
// through in the range have no cell.
type ReportRow struct {
	OrderID     kernel.UUID
	OrderNumber string
	Client      string
	Cells       map[stage.Stage]StageCell
	Total       time.Duration
	// Efficiency is nil when Total is zero.
	Efficiency *float64
}

// Cell returns the cell for s, if the order has one.
func (r ReportRow) Cell(s stage.Stage) (StageCell, bool) {
	c, ok := r.Cells[s]
	return c, ok
}

// EfficiencyText renders the efficiency with one decimal, or N/A.
func (r ReportRow) EfficiencyText() string {
	if r.Efficiency == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f", *r.Efficiency)
}

// ReportTable is the pivoted efficiency report.
type ReportTable struct {
	// Stages holds one column per stage seen in the range, catalog order first.
	Stages       []stage.Stage
	Rows         []ReportRow
	IdealMinutes int
}

// IsEmpty reports that no record fell in the requested range.
func (t ReportTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Columns returns the header row.
func (t ReportTable) Columns() []string {
	cols := make([]string, 0, len(t.Stages)+5)
	cols = append(cols, ColumnOrderID, ColumnOrderNum, ColumnClient)
	for _, s := range t.Stages {
		cols = append(cols, s.String())
	}
	return append(cols, ColumnTotal, ColumnEfficiency)
}

// Values renders every row aligned with Columns. Absent stages are empty
// strings.
func (t ReportTable) Values() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := make([]string, 0, len(t.Stages)+5)
		line = append(line, r.OrderID.String(), r.OrderNumber, r.Client)
		for _, s := range t.Stages {
			if c, ok := r.Cell(s); ok {
				line = append(line, FormatDuration(c.Duration))
			} else {
				line = append(line, "")
			}
		}
		line = append(line, FormatDuration(r.Total), r.EfficiencyText())
		out = append(out, line)
	}
	return out
}

// FormatDuration renders d as HH:MM:SS rounded to the second. Hours are not
// capped at 24.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, secs/3600, secs/60%60, secs%60)
}
