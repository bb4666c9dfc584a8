package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingGeneratorDeterministic(t *testing.T) {
	cfg := DefaultShoppingConfig()
	a := NewShoppingDataGenerator(cfg).GenerateRows()
	b := NewShoppingDataGenerator(cfg).GenerateRows()
	assert.Equal(t, a, b)

	cfg.Seed = 7
	c := NewShoppingDataGenerator(cfg).GenerateRows()
	assert.NotEqual(t, a, c)
}

func TestShoppingGeneratorDefects(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.OrderCount = 500
	rows := NewShoppingDataGenerator(cfg).GenerateRows()

	assert.GreaterOrEqual(t, len(rows), cfg.OrderCount)
	blanks := 0
	for _, row := range rows {
		require.Len(t, row, len(ShoppingHeaders))
		assert.NotEmpty(t, row[0])
		for _, v := range row {
			if v == "" {
				blanks++
			}
		}
	}
	assert.Greater(t, blanks, 0)
	assert.Greater(t, len(rows), cfg.OrderCount, "expected some duplicated rows")
}

func TestShoppingGeneratorNoDefects(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.MissingRate, cfg.DuplicateRate, cfg.BadDateRate = 0, 0, 0
	rows := NewShoppingDataGenerator(cfg).GenerateRows()

	assert.Len(t, rows, cfg.OrderCount)
	for _, row := range rows {
		assert.NotContains(t, row, "")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	n, err := NewShoppingDataGenerator(DefaultShoppingConfig()).WriteCSV(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, "order_id,customer,city,amount,order_date", lines[0])
	assert.Len(t, lines, n+1)
}
