package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"datacleaner/domain/table"

	"github.com/araddon/dateparse"
)

// DefaultNullTokens are the raw cell spellings read as missing
var DefaultNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// TypeCoercer turns raw file cells into typed table cells
type TypeCoercer struct {
	config     CoercionConfig
	nullTokens map[string]struct{}
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NullTokens []string       `json:"null_tokens"`
	Location   *time.Location `json:"-"` // zone for dates without an offset
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NullTokens: DefaultNullTokens,
		Location:   time.UTC,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	if config.Location == nil {
		config.Location = time.UTC
	}
	tokens := make(map[string]struct{}, len(config.NullTokens))
	for _, tok := range config.NullTokens {
		tokens[tok] = struct{}{}
	}
	return &TypeCoercer{config: config, nullTokens: tokens}
}

// IsNull reports whether a raw cell spells a missing value
func (c *TypeCoercer) IsNull(raw string) bool {
	_, ok := c.nullTokens[strings.TrimSpace(raw)]
	return ok
}

// BuildColumn types a whole column: numeric when every non-null cell is a
// number, text otherwise. Text columns keep the original spelling of
// number-like cells.
func (c *TypeCoercer) BuildColumn(raws []string) (table.ColumnType, []table.Cell, TypeAnalysis) {
	analysis := c.AnalyzeTypeDistribution(raws)

	cells := make([]table.Cell, len(raws))
	for i, raw := range raws {
		if c.IsNull(raw) {
			cells[i] = table.NewNullCell()
			continue
		}
		if analysis.RecommendedType == table.TypeNumeric {
			n, _ := c.tryParseNumeric(raw)
			cells[i] = table.NewNumberCell(n)
			continue
		}
		cells[i] = table.NewTextCell(raw)
	}
	return analysis.RecommendedType, cells, analysis
}

// AnalyzeTypeDistribution counts how raw cells coerce
func (c *TypeCoercer) AnalyzeTypeDistribution(raws []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(raws)}
	for _, raw := range raws {
		if c.IsNull(raw) {
			analysis.NullCount++
			continue
		}
		if _, ok := c.tryParseNumeric(raw); ok {
			analysis.NumericCount++
		}
	}

	// An all-missing column types as numeric, like a column of NaN floats.
	analysis.RecommendedType = table.TypeText
	if analysis.NumericCount == analysis.TotalCount-analysis.NullCount {
		analysis.RecommendedType = table.TypeNumeric
	}
	return analysis
}

// tryParseNumeric accepts plain decimal and scientific notation only
func (c *TypeCoercer) tryParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ParseTimestamp infers a date/time from free-form text
func (c *TypeCoercer) ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, c.config.Location)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int              `json:"total_count"`
	NullCount       int              `json:"null_count"`
	NumericCount    int              `json:"numeric_count"`
	RecommendedType table.ColumnType `json:"recommended_type"`
}
