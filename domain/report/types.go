// Package report holds the per-column outcomes produced by the cleaning
// stages and the profiler.
package report

import (
	"datacleaner/domain/table"
)

// FillStrategy names how a column's missing cells were imputed
type FillStrategy string

const (
	FillMedian   FillStrategy = "median"
	FillMode     FillStrategy = "mode"
	FillFallback FillStrategy = "fallback"
	FillSkipped  FillStrategy = "skipped"
)

// FillReport describes the imputation applied to one column
type FillReport struct {
	Column   string       `json:"column"`
	Strategy FillStrategy `json:"strategy"`
	Value    table.Cell   `json:"value"`
	Filled   int          `json:"filled"`
}

// DateReport describes what happened to one date-like column
type DateReport struct {
	Column      string `json:"column"`
	Parsed      int    `json:"parsed"`
	Unparseable int    `json:"unparseable"`
	Skipped     bool   `json:"skipped"`
	Reason      string `json:"reason,omitempty"`
}

// Summary holds descriptive statistics of a numeric column
type Summary struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
}

// ColumnProfile describes one column of a table
type ColumnProfile struct {
	Name     string           `json:"name"`
	Type     table.ColumnType `json:"type"`
	Count    int              `json:"count"`
	Nulls    int              `json:"nulls"`
	Distinct int              `json:"distinct"`
	Summary  *Summary         `json:"summary,omitempty"` // numeric columns with values only
}

// TableProfile describes the shape and columns of a table
type TableProfile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}
