// Package testkit generates messy order exports for exercising the cleaning
// pipeline end to end.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// ShoppingGeneratorConfig configures the shopping data generator
type ShoppingGeneratorConfig struct {
	OrderCount    int       `json:"order_count"`
	CustomerCount int       `json:"customer_count"`
	MissingRate   float64   `json:"missing_rate"`   // chance a cell is blanked
	DuplicateRate float64   `json:"duplicate_rate"` // chance a row is repeated
	BadDateRate   float64   `json:"bad_date_rate"`  // chance a date is garbage
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Seed          int64     `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for shopping data generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		OrderCount:    200,
		CustomerCount: 40,
		MissingRate:   0.1,
		DuplicateRate: 0.05,
		BadDateRate:   0.03,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		Seed:          42,
	}
}

// ShoppingHeaders are the columns of a generated export
var ShoppingHeaders = []string{"order_id", "customer", "city", "amount", "order_date"}

var (
	cities      = []string{"Paris", "Berlin", "Lisbon", "Oslo", "Rome"}
	dateFormats = []string{"2006-01-02", "01/02/2006", "2006-01-02 15:04:05", "Jan 2, 2006"}
	garbage     = []string{"not-a-date", "soon", "TBD", "??"}
)

// ShoppingDataGenerator generates order rows with the usual export defects
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new shopping data generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRows returns the data rows, header excluded. Duplicates are exact
// copies placed right after their original.
func (g *ShoppingDataGenerator) GenerateRows() [][]string {
	rows := make([][]string, 0, g.config.OrderCount)
	for i := 0; i < g.config.OrderCount; i++ {
		row := g.orderRow(i)
		rows = append(rows, row)
		if g.rng.Float64() < g.config.DuplicateRate {
			rows = append(rows, append([]string(nil), row...))
		}
	}
	return rows
}

func (g *ShoppingDataGenerator) orderRow(i int) []string {
	customers := g.config.CustomerCount
	if customers <= 0 {
		customers = 1
	}
	amount := math.Round((5+g.rng.ExpFloat64()*40)*100) / 100

	row := []string{
		strconv.Itoa(i + 1),
		fmt.Sprintf("customer_%04d", g.rng.Intn(customers)+1),
		cities[g.rng.Intn(len(cities))],
		strconv.FormatFloat(amount, 'f', 2, 64),
		g.orderDate(),
	}
	// order_id stays populated so generated rows remain distinct
	for j := 1; j < len(row); j++ {
		if g.rng.Float64() < g.config.MissingRate {
			row[j] = ""
		}
	}
	return row
}

func (g *ShoppingDataGenerator) orderDate() string {
	if g.rng.Float64() < g.config.BadDateRate {
		return garbage[g.rng.Intn(len(garbage))]
	}
	return g.randomTimeInRange(g.config.StartDate, g.config.EndDate).
		Format(dateFormats[g.rng.Intn(len(dateFormats))])
}

// randomTimeInRange generates a random whole-second time between start and end
func (g *ShoppingDataGenerator) randomTimeInRange(start, end time.Time) time.Time {
	span := int64(end.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(span)) * time.Second)
}

// WriteCSV writes a generated export with its header to path
func (g *ShoppingDataGenerator) WriteCSV(path string) (rows int, err error) {
	data := g.GenerateRows()

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(ShoppingHeaders); err != nil {
		return 0, err
	}
	if err := w.WriteAll(data); err != nil {
		return 0, err
	}
	return len(data), nil
}
