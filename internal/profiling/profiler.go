package profiling

import (
	"datacleaner/domain/report"
	"datacleaner/domain/table"
	"datacleaner/internal"
)

// DataProfiler computes table profiles and logs them
type DataProfiler struct {
	analyzer *DistributionAnalyzer
	logger   *internal.Logger
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler(logger *internal.Logger) *DataProfiler {
	return &DataProfiler{
		analyzer: NewDistributionAnalyzer(),
		logger:   logger,
	}
}

// ProfileTable analyzes all columns of t
func (dp *DataProfiler) ProfileTable(t *table.Table) report.TableProfile {
	profile := report.TableProfile{Rows: t.NumRows()}
	for _, col := range t.Columns() {
		profile.Columns = append(profile.Columns, dp.ProfileColumn(col))
	}
	return profile
}

// ProfileColumn counts nulls and distinct values and, for numeric columns,
// summarizes the distribution.
func (dp *DataProfiler) ProfileColumn(col *table.Column) report.ColumnProfile {
	cp := report.ColumnProfile{
		Name:  col.Name,
		Type:  col.Type,
		Count: len(col.Cells),
		Nulls: col.NullCount(),
	}

	distinct := make(map[string]struct{})
	for _, c := range col.Cells {
		if !c.IsNull() {
			distinct[c.Key()] = struct{}{}
		}
	}
	cp.Distinct = len(distinct)

	if col.Type != table.TypeNumeric || cp.Nulls == cp.Count {
		return cp
	}
	values, err := col.Floats()
	if err != nil {
		dp.logger.Debug("  column '%s': no summary: %v", col.Name, err)
		return cp
	}
	summary, err := dp.analyzer.Summarize(values)
	if err != nil {
		dp.logger.Debug("  column '%s': no summary: %v", col.Name, err)
		return cp
	}
	cp.Summary = &summary
	return cp
}

// LogProfile writes the shape at INFO and one line per column at DEBUG
func (dp *DataProfiler) LogProfile(label string, profile report.TableProfile) {
	dp.logger.Info("%s data shape: %d rows, %d columns", label, profile.Rows, len(profile.Columns))
	if dp.logger.GetLevel() < internal.LogLevelDebug {
		return
	}
	for _, cp := range profile.Columns {
		if cp.Summary != nil {
			s := cp.Summary
			dp.logger.Debug("  column '%s' (%s): nulls=%d distinct=%d mean=%.4g std=%.4g min=%.4g median=%.4g max=%.4g skew=%.3f",
				cp.Name, cp.Type, cp.Nulls, cp.Distinct, s.Mean, s.StdDev, s.Min, s.Median, s.Max, s.Skewness)
			continue
		}
		dp.logger.Debug("  column '%s' (%s): nulls=%d distinct=%d", cp.Name, cp.Type, cp.Nulls, cp.Distinct)
	}
}
