package coercer

import (
	"testing"
	"time"

	"datacleaner/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildColumnSingleValue(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name string
		raw  string
		want table.Cell
	}{
		{"empty is null", "", table.NewNullCell()},
		{"NA token is null", "NA", table.NewNullCell()},
		{"padded null token", "  null ", table.NewNullCell()},
		{"integer", "42", table.NewNumberCell(42)},
		{"float with spaces", " 3.5 ", table.NewNumberCell(3.5)},
		{"scientific", "1e3", table.NewNumberCell(1000)},
		{"negative", "-7", table.NewNumberCell(-7)},
		{"hex stays text", "0x10", table.NewTextCell("0x10")},
		{"infinity stays text", "Inf", table.NewTextCell("Inf")},
		{"underscore stays text", "1_000", table.NewTextCell("1_000")},
		{"word", "apple", table.NewTextCell("apple")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cells, _ := c.BuildColumn([]string{tt.raw})
			require.Len(t, cells, 1)
			got := cells[0]
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestBuildColumnNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	typ, cells, analysis := c.BuildColumn([]string{"1", "", "2.5", "N/A"})
	assert.Equal(t, table.TypeNumeric, typ)
	assert.Equal(t, 2, analysis.NullCount)
	assert.Equal(t, 2, analysis.NumericCount)
	require.Len(t, cells, 4)
	assert.True(t, cells[0].Equal(table.NewNumberCell(1)))
	assert.True(t, cells[1].IsNull())
	assert.True(t, cells[2].Equal(table.NewNumberCell(2.5)))
	assert.True(t, cells[3].IsNull())
}

func TestBuildColumnMixedKeepsOriginalText(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	typ, cells, _ := c.BuildColumn([]string{"007", "a", ""})
	assert.Equal(t, table.TypeText, typ)
	assert.True(t, cells[0].Equal(table.NewTextCell("007")))
	assert.True(t, cells[1].Equal(table.NewTextCell("a")))
	assert.True(t, cells[2].IsNull())
}

func TestBuildColumnAllNullIsNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	typ, cells, analysis := c.BuildColumn([]string{"", "NaN"})
	assert.Equal(t, table.TypeNumeric, typ)
	assert.Equal(t, 2, analysis.NullCount)
	assert.True(t, cells[0].IsNull())
}

func TestCustomNullTokens(t *testing.T) {
	c := NewTypeCoercer(CoercionConfig{NullTokens: []string{"", "-"}})
	assert.True(t, c.IsNull("-"))
	assert.False(t, c.IsNull("NA"))
}

func TestParseTimestamp(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	got, ok := c.ParseTimestamp("2024-01-01")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	got, ok = c.ParseTimestamp("2024-03-05 14:30:00")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)))

	got, ok = c.ParseTimestamp("03/05/2024")
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())

	_, ok = c.ParseTimestamp("not-a-date")
	assert.False(t, ok)

	_, ok = c.ParseTimestamp("   ")
	assert.False(t, ok)
}
