package cleaning

import (
	"datacleaner/domain/table"
	"datacleaner/internal"
)

// Deduplicator drops rows identical to an earlier row across all columns
type Deduplicator struct {
	logger *internal.Logger
}

func NewDeduplicator(logger *internal.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

// Deduplicate keeps the first occurrence of every row, in original order,
// and returns how many rows were removed.
func (d *Deduplicator) Deduplicate(t *table.Table) (int, error) {
	initial := t.NumRows()
	seen := make(map[string]struct{}, initial)
	keep := make([]int, 0, initial)
	for i := 0; i < initial; i++ {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	removed := initial - len(keep)
	if removed == 0 {
		return 0, nil
	}
	if err := t.KeepRows(keep); err != nil {
		return 0, err
	}
	d.logger.Info("Removed %d fully duplicated rows", removed)
	return removed, nil
}
