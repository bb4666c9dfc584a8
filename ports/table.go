package ports

import (
	"context"

	"datacleaner/domain/table"
)

// TableReader loads a tabular file into memory
type TableReader interface {
	ReadTable(ctx context.Context, path string) (*table.Table, error)
}

// TableWriter saves a table to a file
type TableWriter interface {
	// CheckPath fails when path cannot be written in any supported format
	CheckPath(path string) error
	WriteTable(ctx context.Context, path string, t *table.Table) error
}
