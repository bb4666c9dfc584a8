// Package cleaning holds the table transformations of the pipeline:
// missing-value imputation, duplicate removal and date normalization.
package cleaning

import (
	"fmt"
	"sort"

	"datacleaner/domain/core"
	"datacleaner/domain/report"
	"datacleaner/domain/table"
	"datacleaner/internal"

	"github.com/montanaflynn/stats"
)

// MissingValueFiller imputes nulls: median for numeric columns, mode otherwise
type MissingValueFiller struct {
	fallback string
	logger   *internal.Logger
}

// NewMissingValueFiller creates a filler; fallback is used for non-numeric
// columns that hold no values at all.
func NewMissingValueFiller(fallback string, logger *internal.Logger) *MissingValueFiller {
	return &MissingValueFiller{fallback: fallback, logger: logger}
}

// Fill imputes every column in place and reports the columns it touched
func (f *MissingValueFiller) Fill(t *table.Table) []report.FillReport {
	f.logger.Info("Handling missing values...")

	var reports []report.FillReport
	for _, col := range t.Columns() {
		missing := col.NullCount()
		if missing == 0 {
			continue
		}

		var fr report.FillReport
		if col.Type == table.TypeNumeric {
			fr = f.fillNumeric(col, missing)
		} else {
			fr = f.fillCategorical(col)
		}
		reports = append(reports, fr)
	}
	return reports
}

func (f *MissingValueFiller) fillNumeric(col *table.Column, missing int) report.FillReport {
	median, err := columnMedian(col)
	if err != nil {
		f.logger.Warn("  column '%s': cannot compute median (%v); %d missing values left unchanged", col.Name, err, missing)
		return report.FillReport{Column: col.Name, Strategy: report.FillSkipped}
	}

	value := table.NewNumberCell(median)
	filled := replaceNulls(col, value)
	f.logger.Info("  column '%s': filled %d missing values with median %.2f", col.Name, filled, median)
	return report.FillReport{Column: col.Name, Strategy: report.FillMedian, Value: value, Filled: filled}
}

func (f *MissingValueFiller) fillCategorical(col *table.Column) report.FillReport {
	strategy := report.FillMode
	value, ok := Mode(col.Cells)
	if !ok {
		strategy = report.FillFallback
		value = table.NewTextCell(f.fallback)
	}

	filled := replaceNulls(col, value)
	f.logger.Info("  column '%s': filled %d missing values with mode '%s'", col.Name, filled, value)
	return report.FillReport{Column: col.Name, Strategy: strategy, Value: value, Filled: filled}
}

// columnMedian returns the median of the non-null values of a numeric column
func columnMedian(col *table.Column) (float64, error) {
	values, err := col.Floats()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, core.ErrNoValues
	}
	median, err := stats.Median(stats.Float64Data(values))
	if err != nil {
		return 0, fmt.Errorf("median of column %q: %w", col.Name, err)
	}
	return median, nil
}

// Mode returns the most frequent non-null cell. Ties go to the smallest
// cell, i.e. the first entry of the sorted list of modes.
func Mode(cells []table.Cell) (table.Cell, bool) {
	counts := make(map[string]int)
	first := make(map[string]table.Cell)
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		key := c.Key()
		if _, seen := first[key]; !seen {
			first[key] = c
		}
		counts[key]++
	}
	if len(counts) == 0 {
		return table.Cell{}, false
	}

	best := 0
	var modes []table.Cell
	for key, n := range counts {
		switch {
		case n > best:
			best = n
			modes = append(modes[:0], first[key])
		case n == best:
			modes = append(modes, first[key])
		}
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i].Less(modes[j]) })
	return modes[0], true
}

func replaceNulls(col *table.Column, value table.Cell) int {
	n := 0
	for i, c := range col.Cells {
		if c.IsNull() {
			col.Cells[i] = value
			n++
		}
	}
	return n
}
