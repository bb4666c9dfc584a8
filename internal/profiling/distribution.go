package profiling

import (
	"datacleaner/domain/report"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Summarize computes summary statistics; data must not be empty
func (da *DistributionAnalyzer) Summarize(data []float64) (report.Summary, error) {
	var summary report.Summary

	mean, err := stats.Mean(data)
	if err != nil {
		return summary, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return summary, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return summary, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return summary, err
	}

	// Quartiles for the spread of the column
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return summary, err
	}

	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return summary, err
	}

	summary.Mean = mean
	summary.Min = min
	summary.Max = max
	summary.Median = median
	summary.Q25 = q25
	summary.Q75 = q75

	// Sample statistics need at least two points
	if len(data) > 1 {
		summary.StdDev = stat.StdDev(data, nil)
	}
	if len(data) > 2 && summary.StdDev > 0 {
		summary.Skewness = stat.Skew(data, nil)
	}

	return summary, nil
}
