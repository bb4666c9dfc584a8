package cleaning

import (
	"strings"
	"time"

	"datacleaner/domain/report"
	"datacleaner/domain/table"
	"datacleaner/internal"
)

// TimestampParser infers a date/time from a text cell
type TimestampParser interface {
	ParseTimestamp(raw string) (time.Time, bool)
}

// DateNormalizer converts date-like columns, picked by name, to datetime cells
type DateNormalizer struct {
	patterns []string
	parser   TimestampParser
	logger   *internal.Logger
}

// NewDateNormalizer creates a normalizer. A column qualifies when its
// lowercased name contains any of patterns.
func NewDateNormalizer(patterns []string, parser TimestampParser, logger *internal.Logger) *DateNormalizer {
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &DateNormalizer{patterns: lowered, parser: parser, logger: logger}
}

// IsDateColumn reports whether the column name matches a date pattern
func (n *DateNormalizer) IsDateColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range n.patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Normalize rewrites qualifying columns in place. Cells that do not parse
// become null, even when none of a column's cells parse. Only a numeric
// column is left as is.
func (n *DateNormalizer) Normalize(t *table.Table) []report.DateReport {
	n.logger.Info("Standardizing date formats...")

	var reports []report.DateReport
	for _, col := range t.Columns() {
		if !n.IsDateColumn(col.Name) {
			continue
		}
		res := n.normalizeColumn(col)
		switch {
		case res.Skipped:
			n.logger.Warn("  column '%s': date conversion failed: %s; values left unchanged", col.Name, res.Reason)
		case res.Unparseable > 0:
			n.logger.Warn("  column '%s': %d values could not be converted to dates", col.Name, res.Unparseable)
		default:
			n.logger.Debug("  column '%s': converted %d values to dates", col.Name, res.Parsed)
		}
		reports = append(reports, res)
	}
	return reports
}

func (n *DateNormalizer) normalizeColumn(col *table.Column) report.DateReport {
	res := report.DateReport{Column: col.Name}

	if col.Type == table.TypeDateTime {
		return res
	}
	if col.Type == table.TypeNumeric {
		res.Skipped = true
		res.Reason = "column is numeric"
		return res
	}

	converted := make([]table.Cell, len(col.Cells))
	for i, c := range col.Cells {
		switch c.Type {
		case table.CellDateTime:
			converted[i] = c
			res.Parsed++
			continue
		case table.CellText:
			if ts, ok := n.parser.ParseTimestamp(c.Text); ok {
				converted[i] = table.NewDateTimeCell(ts)
				res.Parsed++
				continue
			}
			res.Unparseable++
		case table.CellNumber:
			res.Unparseable++
		}
		converted[i] = table.NewNullCell()
	}

	col.Cells = converted
	col.Type = table.TypeDateTime
	return res
}
