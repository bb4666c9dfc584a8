package cleaning

import (
	"testing"

	"datacleaner/domain/table"
	"datacleaner/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	tbl := buildTable(t,
		&table.Column{Name: "id", Type: table.TypeNumeric, Cells: []table.Cell{num(1), num(2), num(1), num(3), num(2)}},
		&table.Column{Name: "tag", Type: table.TypeText, Cells: []table.Cell{text("a"), null(), text("a"), text("c"), null()}},
	)

	removed, err := NewDeduplicator(internal.NopLogger()).Deduplicate(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	id, _ := tbl.Column("id")
	assert.Equal(t, []table.Cell{num(1), num(2), num(3)}, id.Cells)
	tag, _ := tbl.Column("tag")
	assert.True(t, tag.Cells[1].IsNull())
}

func TestDeduplicateNoDuplicates(t *testing.T) {
	tbl := buildTable(t,
		&table.Column{Name: "id", Type: table.TypeNumeric, Cells: []table.Cell{num(1), num(2)}},
	)
	before := tbl.Clone()

	removed, err := NewDeduplicator(internal.NopLogger()).Deduplicate(tbl)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.True(t, before.Equal(tbl))
}

func TestDeduplicateOutputIsUniqueSubsequence(t *testing.T) {
	values := []float64{5, 1, 5, 2, 1, 1, 9, 2}
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = num(v)
	}
	tbl := buildTable(t, &table.Column{Name: "v", Type: table.TypeNumeric, Cells: cells})

	_, err := NewDeduplicator(internal.NopLogger()).Deduplicate(tbl)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < tbl.NumRows(); i++ {
		key := tbl.RowKey(i)
		assert.False(t, seen[key], "row %d duplicated", i)
		seen[key] = true
	}

	col, _ := tbl.Column("v")
	j := 0
	for _, c := range col.Cells {
		for j < len(values) && values[j] != c.Number {
			j++
		}
		require.Less(t, j, len(values), "output is not a subsequence of the input")
		j++
	}
	assert.Equal(t, 4, tbl.NumRows())
}
