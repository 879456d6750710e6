package services

import (
	"math"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

// DefaultIdealMinutes is the ideal time per order used when none is given.
const DefaultIdealMinutes = 60

// ReportFilter selects history records by the calendar date of their entry
// time. From and To are inclusive; only their dates matter.
type ReportFilter struct {
	From         time.Time
	To           time.Time
	IdealMinutes int
	// Location decides the calendar date of a timestamp; nil means UTC.
	Location *time.Location
}

// Validate checks the range order and the ideal time.
func (f ReportFilter) Validate() error {
	if f.From.IsZero() {
		return errs.NewValueIsRequiredError("from")
	}
	if f.To.IsZero() {
		return errs.NewValueIsRequiredError("to")
	}
	if dateOf(f.From, f.location()) > dateOf(f.To, f.location()) {
		return errs.NewValueIsOutOfRangeError("from", f.From.Format(time.DateOnly), "any date", f.To.Format(time.DateOnly))
	}
	if f.IdealMinutes < 1 {
		return errs.NewValueIsOutOfRangeError("idealMinutes", f.IdealMinutes, 1, math.MaxInt32)
	}
	return nil
}

// Contains reports whether t falls on a date inside the range.
func (f ReportFilter) Contains(t time.Time) bool {
	loc := f.location()
	d := dateOf(t, loc)
	return d >= dateOf(f.From, loc) && d <= dateOf(f.To, loc)
}

func (f ReportFilter) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func dateOf(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return y*10000 + int(m)*100 + d
}

// HistoryAggregator builds the efficiency report from the history log.
//
// Algorithm:
//  1. keep records whose entry date is in the filter's range
//  2. group by (order id, client) in first appearance order
//  3. pivot each group by stage; stages the order did not pass stay absent
//  4. total = sum of durations, efficiency = ideal / total * 100 rounded to
//     one decimal, undefined for a zero total
//
// Rows are never re-sorted.
type HistoryAggregator struct {
	catalog stage.Catalog
}

// NewHistoryAggregator creates an aggregator that orders stage columns by
// catalog.
func NewHistoryAggregator(catalog stage.Catalog) HistoryAggregator {
	return HistoryAggregator{catalog: catalog}
}

type groupKey struct {
	orderID kernel.UUID
	client  string
}

// BuildReport pivots records into a ReportTable. An empty range gives an
// empty table and no error.
func (a HistoryAggregator) BuildReport(records []history.Record, filter ReportFilter) (ReportTable, error) {
	if err := filter.Validate(); err != nil {
		return ReportTable{}, err
	}

	table := ReportTable{IdealMinutes: filter.IdealMinutes}
	index := make(map[groupKey]int)
	seen := make(map[stage.Stage]struct{})
	var unknown []stage.Stage

	for _, r := range records {
		if !filter.Contains(r.EntryTime()) {
			continue
		}

		key := groupKey{orderID: r.OrderID(), client: r.Client()}
		i, ok := index[key]
		if !ok {
			i = len(table.Rows)
			index[key] = i
			table.Rows = append(table.Rows, ReportRow{
				OrderID:     r.OrderID(),
				OrderNumber: r.OrderNumber(),
				Client:      r.Client(),
				Cells:       make(map[stage.Stage]StageCell),
			})
		}

		row := &table.Rows[i]
		cell, exists := row.Cells[r.Stage()]
		if exists {
			// a stage is left once per order, but imported history may repeat it
			cell.Duration += r.Duration()
			if r.EntryTime().Before(cell.Entry) {
				cell.Entry = r.EntryTime()
			}
			if r.ExitTime().After(cell.Exit) {
				cell.Exit = r.ExitTime()
			}
		} else {
			cell = StageCell{Entry: r.EntryTime(), Exit: r.ExitTime(), Duration: r.Duration()}
		}
		row.Cells[r.Stage()] = cell
		row.Total += r.Duration()

		if _, ok := seen[r.Stage()]; !ok {
			seen[r.Stage()] = struct{}{}
			if !a.catalog.Contains(r.Stage()) {
				unknown = append(unknown, r.Stage())
			}
		}
	}

	for _, s := range a.catalog.Stages() {
		if _, ok := seen[s]; ok {
			table.Stages = append(table.Stages, s)
		}
	}
	table.Stages = append(table.Stages, unknown...)

	ideal := float64(filter.IdealMinutes) * 60
	for i := range table.Rows {
		table.Rows[i].Efficiency = efficiency(ideal, table.Rows[i].Total)
	}

	return table, nil
}

func efficiency(idealSeconds float64, total time.Duration) *float64 {
	if total <= 0 {
		return nil
	}
	e := math.Round(idealSeconds/total.Seconds()*100*10) / 10
	return &e
}
